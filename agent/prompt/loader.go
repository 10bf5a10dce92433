package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/greeter.txt
	greeterRaw string

	//go:embed template/reservation.txt
	reservationRaw string

	//go:embed template/takeaway.txt
	takeawayRaw string

	//go:embed template/checkout.txt
	checkoutRaw string
)

// PromptSet holds the standing instructions for each stage agent.
type PromptSet struct {
	Greeter     string
	Reservation string
	Takeaway    string
	Checkout    string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Greeter:     strings.TrimSpace(greeterRaw),
		Reservation: strings.TrimSpace(reservationRaw),
		Takeaway:    strings.TrimSpace(takeawayRaw),
		Checkout:    strings.TrimSpace(checkoutRaw),
	}
}

// Render substitutes the live menu text into a stage template.
func Render(template, menu string) string {
	return strings.ReplaceAll(template, "{menu}", menu)
}
