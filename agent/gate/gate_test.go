package gate

import (
	"errors"
	"testing"

	"github.com/jirayus/restaurant-voice-agent/agent/session"
)

func TestConfirmReservationChecksInOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		setup      func(sess *session.Context)
		wantField  string
		wantPrompt string
	}{
		{
			name:       "missing everything reports customer first",
			setup:      func(sess *session.Context) {},
			wantField:  "customer",
			wantPrompt: "Please provide your name and phone number first.",
		},
		{
			name: "name without phone still fails customer check",
			setup: func(sess *session.Context) {
				sess.SetCustomerName("Ann")
			},
			wantField:  "customer",
			wantPrompt: "Please provide your name and phone number first.",
		},
		{
			name: "missing date",
			setup: func(sess *session.Context) {
				sess.SetCustomerName("Ann")
				sess.SetCustomerPhone("555-0100")
			},
			wantField:  "reservation_date",
			wantPrompt: "Please provide reservation date first.",
		},
		{
			name: "missing time",
			setup: func(sess *session.Context) {
				sess.SetCustomerName("Ann")
				sess.SetCustomerPhone("555-0100")
				sess.SetReservation("2026-09-01", "", 0, 0)
			},
			wantField:  "reservation_time",
			wantPrompt: "Please provide reservation time first.",
		},
		{
			name: "missing party size",
			setup: func(sess *session.Context) {
				sess.SetCustomerName("Ann")
				sess.SetCustomerPhone("555-0100")
				sess.SetReservation("2026-09-01", "19:00", 0, 0)
			},
			wantField:  "num_people",
			wantPrompt: "Please provide number of people for the reservation.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sess := session.New(nil)
			tc.setup(sess)

			err := ConfirmReservation(sess)
			var mf *MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatalf("ConfirmReservation() error = %v, want MissingFieldError", err)
			}
			if mf.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", mf.Field, tc.wantField)
			}
			if mf.Prompt != tc.wantPrompt {
				t.Fatalf("prompt = %q, want %q", mf.Prompt, tc.wantPrompt)
			}
		})
	}
}

func TestConfirmReservationPasses(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	sess.SetCustomerName("Ann")
	sess.SetCustomerPhone("555-0100")
	sess.SetReservation("2026-09-01", "19:00", 4, 3)

	if err := ConfirmReservation(sess); err != nil {
		t.Fatalf("ConfirmReservation() error = %v", err)
	}
}

func TestConfirmOrder(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	err := ConfirmOrder(sess)
	if err == nil || err.Error() != "No takeaway order found. Please make an order first." {
		t.Fatalf("ConfirmOrder() error = %v", err)
	}

	sess.SetOrder([]string{"Pizza"})
	if err := ConfirmOrder(sess); err != nil {
		t.Fatalf("ConfirmOrder() with items error = %v", err)
	}
}

func TestConfirmCheckoutExpenseBeforeCard(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	sess.SetCard("4111111111111111", "12/27", "123")

	err := ConfirmCheckout(sess)
	if err == nil || err.Error() != "Please confirm the expense first." {
		t.Fatalf("ConfirmCheckout() error = %v, want expense prompt", err)
	}

	sess.SetExpense(12)
	sess.SetCard("", "", "")
	err = ConfirmCheckout(sess)
	if err == nil || err.Error() != "Please provide the credit card information first." {
		t.Fatalf("ConfirmCheckout() error = %v, want card prompt", err)
	}

	sess.SetCard("4111111111111111", "12/27", "123")
	if err := ConfirmCheckout(sess); err != nil {
		t.Fatalf("ConfirmCheckout() error = %v", err)
	}
}

func TestConfirmCheckoutPartialCardFails(t *testing.T) {
	t.Parallel()

	sess := session.New(nil)
	sess.SetExpense(12)
	sess.SetCard("4111111111111111", "12/27", "")

	err := ConfirmCheckout(sess)
	var mf *MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "credit_card" {
		t.Fatalf("ConfirmCheckout() error = %v, want credit_card failure", err)
	}
}
