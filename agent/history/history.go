// Package history holds the per-agent conversation log. A History is
// append-only while its agent is active; hand-offs build new filtered copies
// and install them wholesale.
package history

import "github.com/google/uuid"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one logged exchange. The ID is assigned at creation time and is
// the sole identity used for de-duplication during merges: two entries with
// equal text but different ids stay distinct.
type Entry struct {
	ID            string
	Role          Role
	Content       string
	IsInstruction bool
	IsToolCall    bool
}

type History struct {
	items []Entry
}

func New() *History {
	return &History{}
}

// Seed creates a history whose first entry carries the agent's standing
// instructions. Instruction entries are excluded from carry copies.
func Seed(instructions string) *History {
	h := New()
	h.AddEntry(Entry{
		ID:            uuid.NewString(),
		Role:          RoleSystem,
		Content:       instructions,
		IsInstruction: true,
	})
	return h
}

// AddMessage appends a plain message entry with a fresh id.
func (h *History) AddMessage(role Role, content string) Entry {
	e := Entry{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
	h.AddEntry(e)
	return e
}

// AddInstruction appends a system entry flagged as instruction content.
func (h *History) AddInstruction(content string) Entry {
	e := Entry{
		ID:            uuid.NewString(),
		Role:          RoleSystem,
		Content:       content,
		IsInstruction: true,
	}
	h.AddEntry(e)
	return e
}

// AddToolCall appends an assistant entry recording a function invocation.
// Tool-call entries survive carry copies.
func (h *History) AddToolCall(content string) Entry {
	e := Entry{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    content,
		IsToolCall: true,
	}
	h.AddEntry(e)
	return e
}

func (h *History) AddEntry(e Entry) {
	h.items = append(h.items, e)
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.items)
}

// Items returns the entries in order. The slice is a copy; entries are values.
func (h *History) Items() []Entry {
	if h == nil {
		return nil
	}
	out := make([]Entry, len(h.items))
	copy(out, h.items)
	return out
}

// IDs returns the set of entry ids currently present.
func (h *History) IDs() map[string]struct{} {
	if h == nil {
		return map[string]struct{}{}
	}
	ids := make(map[string]struct{}, len(h.items))
	for _, e := range h.items {
		ids[e.ID] = struct{}{}
	}
	return ids
}

// CopyOptions filter a Copy. Zero value copies everything.
type CopyOptions struct {
	ExcludeInstructions bool
	ExcludeToolCalls    bool
}

// Copy returns a new History with the filtered entries in original order.
// Entry ids are preserved so merges can de-duplicate against the source.
func (h *History) Copy(opts CopyOptions) *History {
	out := New()
	if h == nil {
		return out
	}
	for _, e := range h.items {
		if opts.ExcludeInstructions && e.IsInstruction {
			continue
		}
		if opts.ExcludeToolCalls && e.IsToolCall {
			continue
		}
		out.items = append(out.items, e)
	}
	return out
}

// Truncate keeps at most the last max entries, dropping oldest first. It
// mutates the receiver and returns it for chaining.
func (h *History) Truncate(max int) *History {
	if h == nil || max < 0 {
		return h
	}
	if len(h.items) > max {
		h.items = h.items[len(h.items)-max:]
	}
	return h
}
