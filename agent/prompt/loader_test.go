package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSet(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	for name, text := range map[string]string{
		"greeter":     set.Greeter,
		"reservation": set.Reservation,
		"takeaway":    set.Takeaway,
		"checkout":    set.Checkout,
	} {
		if strings.TrimSpace(text) == "" {
			t.Fatalf("%s prompt is empty", name)
		}
		if text != strings.TrimSpace(text) {
			t.Fatalf("%s prompt is not trimmed", name)
		}
	}
}

func TestRenderReplacesMenuPlaceholder(t *testing.T) {
	t.Parallel()

	got := Render("Our menu: {menu}. Enjoy {menu}.", "Pizza: $10")
	if got != "Our menu: Pizza: $10. Enjoy Pizza: $10." {
		t.Fatalf("Render() = %q", got)
	}
}
