// Package gate holds the per-stage precondition checks run before a
// business-finalizing hand-off. Checks are pure functions over the session
// context: ordered, first failure wins, one corrective prompt per turn.
package gate

import (
	"strings"

	"github.com/jirayus/restaurant-voice-agent/agent/session"
)

// MissingFieldError names the first unmet precondition and carries the
// corrective prompt spoken back to the caller.
type MissingFieldError struct {
	Field  string
	Prompt string
}

func (e *MissingFieldError) Error() string {
	return e.Prompt
}

func missing(field, prompt string) error {
	return &MissingFieldError{Field: field, Prompt: prompt}
}

// ConfirmReservation gates the Reservation -> Greeter transition.
func ConfirmReservation(sess *session.Context) error {
	if isBlank(sess.CustomerName) || isBlank(sess.CustomerPhone) {
		return missing("customer", "Please provide your name and phone number first.")
	}
	if isBlank(sess.ReservationDate) {
		return missing("reservation_date", "Please provide reservation date first.")
	}
	if isBlank(sess.ReservationTime) {
		return missing("reservation_time", "Please provide reservation time first.")
	}
	if sess.PartySize <= 0 {
		return missing("num_people", "Please provide number of people for the reservation.")
	}
	return nil
}

// ConfirmOrder gates the Takeaway -> Checkout transition.
func ConfirmOrder(sess *session.Context) error {
	if len(sess.Order) == 0 {
		return missing("order", "No takeaway order found. Please make an order first.")
	}
	return nil
}

// ConfirmCheckout gates the Checkout -> Greeter transition.
func ConfirmCheckout(sess *session.Context) error {
	if sess.Expense <= 0 {
		return missing("expense", "Please confirm the expense first.")
	}
	if isBlank(sess.CardNumber) || isBlank(sess.CardExpiry) || isBlank(sess.CardCVV) {
		return missing("credit_card", "Please provide the credit card information first.")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
