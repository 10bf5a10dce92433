package history

import "testing"

func TestSeedMarksInstructions(t *testing.T) {
	t.Parallel()

	h := Seed("You are greeter agent.")
	items := h.Items()
	if len(items) != 1 {
		t.Fatalf("Seed() produced %d entries, want 1", len(items))
	}
	if !items[0].IsInstruction {
		t.Fatal("seed entry is not flagged as instruction")
	}
	if items[0].Role != RoleSystem {
		t.Fatalf("seed entry role = %q, want %q", items[0].Role, RoleSystem)
	}
	if items[0].ID == "" {
		t.Fatal("seed entry has no id")
	}
}

func TestCopyExcludesInstructionsKeepsToolCalls(t *testing.T) {
	t.Parallel()

	h := Seed("instructions")
	h.AddMessage(RoleUser, "hi")
	h.AddToolCall(`update_name({"name":"Ann"})`)
	h.AddInstruction("You are reservation agent. Current user data is ...")
	h.AddMessage(RoleAssistant, "sure")

	got := h.Copy(CopyOptions{ExcludeInstructions: true})
	if got.Len() != 3 {
		t.Fatalf("Copy() kept %d entries, want 3", got.Len())
	}
	for _, e := range got.Items() {
		if e.IsInstruction {
			t.Fatalf("instruction entry survived copy: %q", e.Content)
		}
	}
	if !got.Items()[1].IsToolCall {
		t.Fatal("tool-call entry did not survive copy")
	}
}

func TestCopyExcludesToolCalls(t *testing.T) {
	t.Parallel()

	h := New()
	h.AddMessage(RoleUser, "hi")
	h.AddToolCall(`to_checkout()`)

	got := h.Copy(CopyOptions{ExcludeToolCalls: true})
	if got.Len() != 1 {
		t.Fatalf("Copy() kept %d entries, want 1", got.Len())
	}
}

func TestCopyPreservesIDsAndIsolation(t *testing.T) {
	t.Parallel()

	h := New()
	orig := h.AddMessage(RoleUser, "hi")

	got := h.Copy(CopyOptions{})
	if got.Items()[0].ID != orig.ID {
		t.Fatalf("copy id = %q, want %q", got.Items()[0].ID, orig.ID)
	}

	got.AddMessage(RoleAssistant, "added to copy only")
	if h.Len() != 1 {
		t.Fatalf("source history grew to %d after writing the copy", h.Len())
	}
}

func TestTruncateKeepsMostRecent(t *testing.T) {
	t.Parallel()

	h := New()
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		h.AddMessage(RoleUser, c)
	}

	h.Truncate(3)
	items := h.Items()
	if len(items) != 3 {
		t.Fatalf("Truncate(3) left %d entries", len(items))
	}
	if items[0].Content != "c" || items[2].Content != "e" {
		t.Fatalf("Truncate() kept wrong window: %q .. %q", items[0].Content, items[2].Content)
	}
}

func TestTruncateNoopWhenShorter(t *testing.T) {
	t.Parallel()

	h := New()
	h.AddMessage(RoleUser, "only")
	h.Truncate(6)
	if h.Len() != 1 {
		t.Fatalf("Truncate() changed a short history, len = %d", h.Len())
	}
}

func TestIDsCoverAllEntries(t *testing.T) {
	t.Parallel()

	h := New()
	a := h.AddMessage(RoleUser, "x")
	b := h.AddMessage(RoleUser, "x")
	if a.ID == b.ID {
		t.Fatal("identical content produced identical ids")
	}

	ids := h.IDs()
	if len(ids) != 2 {
		t.Fatalf("IDs() returned %d ids, want 2", len(ids))
	}
	if _, ok := ids[a.ID]; !ok {
		t.Fatal("IDs() is missing the first entry")
	}
}

func TestNilHistoryAccessors(t *testing.T) {
	t.Parallel()

	var h *History
	if h.Len() != 0 {
		t.Fatal("nil history has non-zero length")
	}
	if got := h.Copy(CopyOptions{}); got == nil || got.Len() != 0 {
		t.Fatal("nil history copy is not an empty history")
	}
}
