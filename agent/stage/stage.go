// Package stage defines the four task agents of the restaurant conversation.
// Each agent is a named stage with standing instructions, a fixed tool list,
// and a voice profile; only its private history buffer mutates after
// construction.
package stage

import (
	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/history"
	"github.com/jirayus/restaurant-voice-agent/agent/prompt"
)

// Tool names exposed by the stage agents. The dispatch table in agent/tool
// maps each name to its handler.
const (
	ToolUpdateName         = "update_name"
	ToolUpdatePhone        = "update_phone"
	ToolToGreeter          = "to_greeter"
	ToolToReservation      = "to_reservation"
	ToolToTakeaway         = "to_takeaway"
	ToolUpdateReservation  = "update_reservation_time"
	ToolConfirmReservation = "confirm_reservation"
	ToolUpdateOrder        = "update_order"
	ToolToCheckout         = "to_checkout"
	ToolConfirmExpense     = "confirm_expense"
	ToolUpdateCreditCard   = "update_credit_card"
	ToolConfirmCheckout    = "confirm_checkout"
)

// ElevenLabs voice ids per stage, consumed by the external speech layer.
var voices = map[contract.StageName]string{
	contract.StageGreeter:     "EXAVITQu4vr4xnSDxMaL",
	contract.StageReservation: "IKne3meq5aSn9XLyUdCD",
	contract.StageTakeaway:    "TX3LPaxmHKxFdv7VOQHJ",
	contract.StageCheckout:    "cgSgspJ2msm6clMCkdW9",
}

type TaskAgent struct {
	name         contract.StageName
	instructions string
	tools        []string
	voice        string
	hist         *history.History
}

func newTaskAgent(name contract.StageName, instructions string, tools []string) *TaskAgent {
	return &TaskAgent{
		name:         name,
		instructions: instructions,
		tools:        tools,
		voice:        voices[name],
		hist:         history.Seed(instructions),
	}
}

func NewGreeter(menu string) *TaskAgent {
	return newTaskAgent(
		contract.StageGreeter,
		prompt.Render(prompt.LoadPromptSet().Greeter, menu),
		[]string{ToolToReservation, ToolToTakeaway},
	)
}

func NewReservation() *TaskAgent {
	return newTaskAgent(
		contract.StageReservation,
		prompt.LoadPromptSet().Reservation,
		[]string{ToolUpdateReservation, ToolConfirmReservation, ToolUpdateName, ToolUpdatePhone, ToolToGreeter},
	)
}

func NewTakeaway(menu string) *TaskAgent {
	return newTaskAgent(
		contract.StageTakeaway,
		prompt.Render(prompt.LoadPromptSet().Takeaway, menu),
		[]string{ToolUpdateOrder, ToolToCheckout, ToolToGreeter},
	)
}

func NewCheckout(menu string) *TaskAgent {
	return newTaskAgent(
		contract.StageCheckout,
		prompt.Render(prompt.LoadPromptSet().Checkout, menu),
		[]string{ToolConfirmExpense, ToolUpdateCreditCard, ToolConfirmCheckout, ToolToTakeaway, ToolUpdateName, ToolUpdatePhone, ToolToGreeter},
	)
}

// NewRegistry builds the fixed stage registry for one session. The map is
// created once at session start and read-only afterward.
func NewRegistry(menu string) map[contract.StageName]*TaskAgent {
	return map[contract.StageName]*TaskAgent{
		contract.StageGreeter:     NewGreeter(menu),
		contract.StageReservation: NewReservation(),
		contract.StageTakeaway:    NewTakeaway(menu),
		contract.StageCheckout:    NewCheckout(menu),
	}
}

func (a *TaskAgent) Name() contract.StageName { return a.name }
func (a *TaskAgent) Instructions() string     { return a.instructions }
func (a *TaskAgent) Voice() string            { return a.voice }

// Tools returns the fixed list of callable tool names for this stage.
func (a *TaskAgent) Tools() []string {
	out := make([]string, len(a.tools))
	copy(out, a.tools)
	return out
}

func (a *TaskAgent) HasTool(name string) bool {
	for _, t := range a.tools {
		if t == name {
			return true
		}
	}
	return false
}

func (a *TaskAgent) History() *history.History {
	return a.hist
}

// SetHistory installs a merged history. Only the hand-off controller calls
// this, after building the destination copy.
func (a *TaskAgent) SetHistory(h *history.History) {
	if h == nil {
		h = history.New()
	}
	a.hist = h
}
