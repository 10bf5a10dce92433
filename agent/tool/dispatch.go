package tool

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/gate"
	"github.com/jirayus/restaurant-voice-agent/agent/handoff"
	"github.com/jirayus/restaurant-voice-agent/agent/session"
	"github.com/jirayus/restaurant-voice-agent/agent/stage"
	"github.com/jirayus/restaurant-voice-agent/agent/store"
	logx "github.com/jirayus/restaurant-voice-agent/pkg/logger"
	"github.com/jirayus/restaurant-voice-agent/pkg/tables"
)

// Dispatcher executes decoded tool calls against the session. Every handler
// returns a plain text result the runtime relays to the caller, including on
// recoverable failures; only contract violations surface as errors.
type Dispatcher struct {
	sess     *session.Context
	handoffs *handoff.Controller
	records  store.Store
	tables   tables.Assigner
	log      zerolog.Logger
}

func NewDispatcher(
	sess *session.Context,
	handoffs *handoff.Controller,
	records store.Store,
	assigner tables.Assigner,
) (*Dispatcher, error) {
	if sess == nil {
		return nil, errors.New("session context is required")
	}
	if handoffs == nil {
		return nil, errors.New("handoff controller is required")
	}
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if assigner == nil {
		assigner = tables.Static{}
	}
	return &Dispatcher{
		sess:     sess,
		handoffs: handoffs,
		records:  records,
		tables:   assigner,
		log:      logx.Component("tool"),
	}, nil
}

// Execute runs one tool call on behalf of the active agent.
func (d *Dispatcher) Execute(ctx context.Context, active *stage.TaskAgent, call contract.ToolCall) (string, error) {
	if active == nil {
		return "", fmt.Errorf("%w: no active agent", contract.ErrValidation)
	}
	if !active.HasTool(call.Name) {
		return "", fmt.Errorf("%w: %s is not callable from stage %s", contract.ErrUnknownTool, call.Name, active.Name())
	}

	d.log.Debug().Str("tool", call.Name).Str("stage", string(active.Name())).Msg("executing tool call")

	switch call.Name {
	case stage.ToolUpdateName:
		return d.updateName(call.Args)
	case stage.ToolUpdatePhone:
		return d.updatePhone(call.Args)
	case stage.ToolUpdateReservation:
		return d.updateReservation(ctx, call.Args)
	case stage.ToolConfirmReservation:
		return d.confirmReservation(ctx)
	case stage.ToolUpdateOrder:
		return d.updateOrder(call.Args)
	case stage.ToolToCheckout:
		return d.toCheckout(ctx)
	case stage.ToolConfirmExpense:
		return d.confirmExpense(call.Args)
	case stage.ToolUpdateCreditCard:
		return d.updateCreditCard(call.Args)
	case stage.ToolConfirmCheckout:
		return d.confirmCheckout(ctx)
	case stage.ToolToGreeter:
		return d.handoffs.Transfer(ctx, d.sess, contract.StageGreeter)
	case stage.ToolToReservation:
		return d.handoffs.Transfer(ctx, d.sess, contract.StageReservation)
	case stage.ToolToTakeaway:
		return d.handoffs.Transfer(ctx, d.sess, contract.StageTakeaway)
	default:
		return "", fmt.Errorf("%w: %s", contract.ErrUnknownTool, call.Name)
	}
}

func (d *Dispatcher) updateName(args map[string]any) (string, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return "", err
	}
	d.sess.SetCustomerName(name)
	return fmt.Sprintf("The name is updated to %s", name), nil
}

func (d *Dispatcher) updatePhone(args map[string]any) (string, error) {
	phone, err := stringArg(args, "phone")
	if err != nil {
		return "", err
	}
	d.sess.SetCustomerPhone(phone)
	return fmt.Sprintf("The phone number is updated to %s", phone), nil
}

func (d *Dispatcher) updateReservation(ctx context.Context, args map[string]any) (string, error) {
	date, err := stringArg(args, "date")
	if err != nil {
		return "", err
	}
	timeSlot, err := stringArg(args, "time")
	if err != nil {
		return "", err
	}
	numPeople, err := intArg(args, "num_people")
	if err != nil {
		return "", err
	}

	table, err := d.tables.AssignTable(ctx, date, timeSlot, numPeople)
	if err != nil {
		d.log.Error().Err(err).Msg("table assignment failed")
		return "No table is available for that time. Please try another time.", nil
	}

	d.sess.SetReservation(date, timeSlot, numPeople, table)
	return fmt.Sprintf(
		"The reservation time is updated to %s in %s for %d. Your table number is %d.",
		timeSlot, date, numPeople, table,
	), nil
}

func (d *Dispatcher) confirmReservation(ctx context.Context) (string, error) {
	if err := gate.ConfirmReservation(d.sess); err != nil {
		return err.Error(), nil
	}

	rec, err := d.records.CreateReservation(ctx, &store.Reservation{
		CustomerName: d.sess.CustomerName,
		MobileNumber: d.sess.CustomerPhone,
		Date:         d.sess.ReservationDate,
		Time:         d.sess.ReservationTime,
		TableNumber:  d.sess.TableNumber,
		NumPeople:    d.sess.PartySize,
	})
	if err != nil {
		// stay in the reservation stage so the caller can retry
		d.log.Error().Err(err).Msg("create reservation failed")
		return "Failed to create reservation", nil
	}
	d.log.Info().Int64("reservation_id", rec.ID).Msg("reservation created")

	return d.handoffs.Transfer(ctx, d.sess, contract.StageGreeter)
}

func (d *Dispatcher) updateOrder(args map[string]any) (string, error) {
	items, err := stringSliceArg(args, "items")
	if err != nil {
		return "", err
	}
	d.sess.SetOrder(items)
	return fmt.Sprintf("The order is updated to %s", strings.Join(items, ", ")), nil
}

func (d *Dispatcher) toCheckout(ctx context.Context) (string, error) {
	if err := gate.ConfirmOrder(d.sess); err != nil {
		return err.Error(), nil
	}
	return d.handoffs.Transfer(ctx, d.sess, contract.StageCheckout)
}

func (d *Dispatcher) confirmExpense(args map[string]any) (string, error) {
	expense, err := floatArg(args, "expense")
	if err != nil {
		return "", err
	}
	d.sess.SetExpense(expense)
	return fmt.Sprintf("The expense is confirmed to be %v", expense), nil
}

func (d *Dispatcher) updateCreditCard(args map[string]any) (string, error) {
	number, err := stringArg(args, "number")
	if err != nil {
		return "", err
	}
	expiry, err := stringArg(args, "expiry")
	if err != nil {
		return "", err
	}
	cvv, err := stringArg(args, "cvv")
	if err != nil {
		return "", err
	}
	d.sess.SetCard(number, expiry, cvv)
	return fmt.Sprintf("The credit card number is updated to %s", number), nil
}

func (d *Dispatcher) confirmCheckout(ctx context.Context) (string, error) {
	if err := gate.ConfirmCheckout(d.sess); err != nil {
		return err.Error(), nil
	}
	d.sess.MarkCheckedOut()
	return d.handoffs.Transfer(ctx, d.sess, contract.StageGreeter)
}

/* ------------------------------ arg helpers ------------------------------ */

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", contract.ErrValidation, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contract.ErrValidation, key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s is empty", contract.ErrValidation, key)
	}
	return s, nil
}

// intArg tolerates the number arriving as a JSON number or a spelled-out
// string; speech transcripts produce both.
func intArg(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", contract.ErrValidation, key)
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number", contract.ErrValidation, key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", contract.ErrValidation, key)
	}
}

func floatArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", contract.ErrValidation, key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number", contract.ErrValidation, key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", contract.ErrValidation, key)
	}
}

func stringSliceArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s is required", contract.ErrValidation, key)
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a list of strings", contract.ErrValidation, key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list of strings", contract.ErrValidation, key)
	}
}
