package contract

// StageName identifies one conversation stage. The set is closed: every
// session registry holds exactly these four agents.
type StageName string

const (
	StageGreeter     StageName = "greeter"
	StageReservation StageName = "reservation"
	StageTakeaway    StageName = "takeaway"
	StageCheckout    StageName = "checkout"
)

func (s StageName) Valid() bool {
	switch s {
	case StageGreeter, StageReservation, StageTakeaway, StageCheckout:
		return true
	default:
		return false
	}
}

// ToolCall is one function invocation decoded from the model, addressed to
// the currently active stage agent.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}
