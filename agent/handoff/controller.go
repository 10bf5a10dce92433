// Package handoff moves the conversation between stage agents while carrying
// a bounded window of recent history, so the destination can continue
// coherently without the prompt context growing across a long call.
package handoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/history"
	"github.com/jirayus/restaurant-voice-agent/agent/session"
	"github.com/jirayus/restaurant-voice-agent/agent/stage"
	logx "github.com/jirayus/restaurant-voice-agent/pkg/logger"
)

// CarryWindow bounds how many of the source agent's most recent entries are
// copied into the destination on a hand-off. A recency window, not a summary.
const CarryWindow = 6

// Runtime is the slice of the conversation runtime the controller needs: the
// active-agent pointer it reassigns and one reply generation per hand-off.
type Runtime interface {
	ActiveAgent() *stage.TaskAgent
	SetActiveAgent(a *stage.TaskAgent)

	// GenerateReply asks the external LLM layer for the next system
	// utterance. toolsEnabled=false keeps the model from invoking a tool
	// before the user has spoken again.
	GenerateReply(ctx context.Context, toolsEnabled bool) (string, error)
}

type Controller struct {
	rt  Runtime
	log zerolog.Logger
}

func NewController(rt Runtime) (*Controller, error) {
	if rt == nil {
		return nil, errors.New("conversation runtime is required")
	}
	return &Controller{
		rt:  rt,
		log: logx.Component("handoff"),
	}, nil
}

// Transfer hands the conversation to the named stage agent and returns a
// short acknowledgement the runtime may speak or log.
//
// An unknown target is a programming-contract violation, not a user-facing
// error: valid tool catalogs can never produce one.
func (c *Controller) Transfer(ctx context.Context, sess *session.Context, target contract.StageName) (string, error) {
	dest, ok := sess.Agent(target)
	if !ok {
		return "", fmt.Errorf("%w: %s", contract.ErrUnknownAgent, target)
	}

	prev := c.rt.ActiveAgent()
	sess.SetPrevAgent(prev)

	destHist := dest.History().Copy(history.CopyOptions{})

	// Carry the source agent's recent turns: instructions stay behind,
	// tool-call entries travel. De-dup by entry id so bouncing back to an
	// agent the caller already talked to never re-injects its entries.
	if prev != nil {
		carry := prev.History().
			Copy(history.CopyOptions{ExcludeInstructions: true}).
			Truncate(CarryWindow)
		existing := destHist.IDs()
		for _, e := range carry.Items() {
			if _, dup := existing[e.ID]; dup {
				continue
			}
			destHist.AddEntry(e)
		}
	}

	dest.SetHistory(destHist)
	destHist.AddInstruction(fmt.Sprintf("You are %s agent. Current user data is %s", dest.Name(), sess.Summarize()))

	c.rt.SetActiveAgent(dest)
	c.log.Info().Str("stage", string(dest.Name())).Msg("entering task")

	if _, err := c.rt.GenerateReply(ctx, false); err != nil {
		// Reply generation is the runtime's problem and is not retried
		// here; the hand-off itself already completed.
		c.log.Error().Err(err).Str("stage", string(dest.Name())).Msg("reply generation failed after hand-off")
	}

	return fmt.Sprintf("Transferring to %s.", dest.Name()), nil
}
