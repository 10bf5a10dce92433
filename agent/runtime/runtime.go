// Package runtime is the conversation runtime for one connected call: it
// owns the active-agent pointer, serializes turns, and drives the chat model.
// Speech capture and synthesis sit outside; this layer starts at text.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/handoff"
	"github.com/jirayus/restaurant-voice-agent/agent/history"
	llmx "github.com/jirayus/restaurant-voice-agent/agent/llm"
	"github.com/jirayus/restaurant-voice-agent/agent/session"
	"github.com/jirayus/restaurant-voice-agent/agent/stage"
	"github.com/jirayus/restaurant-voice-agent/agent/store"
	toolx "github.com/jirayus/restaurant-voice-agent/agent/tool"
	logx "github.com/jirayus/restaurant-voice-agent/pkg/logger"
	"github.com/jirayus/restaurant-voice-agent/pkg/tables"
)

const DefaultMenu = "Pizza: $10, Salad: $5, Ice Cream: $3, Coffee: $2"

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrNoActiveAgent  = errors.New("no active agent")
)

// ModelSet holds one chat model per stage. Stages may share an instance.
type ModelSet map[contract.StageName]einomodel.ToolCallingChatModel

type Config struct {
	Menu string
}

// SessionRuntime runs one caller session: one session context, one fixed
// agent registry, one sequential stream of turns. Independent callers get
// independent runtimes and share nothing but the record store.
type SessionRuntime struct {
	sess     *session.Context
	handoffs *handoff.Controller
	dispatch *toolx.Dispatcher

	active *stage.TaskAgent

	models ModelSet
	bound  ModelSet

	turnRunner compose.Runnable[TurnInput, TurnOutput]

	lastReply string
	log       zerolog.Logger
}

var _ handoff.Runtime = (*SessionRuntime)(nil)

func New(
	ctx context.Context,
	models ModelSet,
	records store.Store,
	assigner tables.Assigner,
	cfg Config,
) (*SessionRuntime, error) {
	if records == nil {
		return nil, errors.New("record store is required")
	}

	menu := strings.TrimSpace(cfg.Menu)
	if menu == "" {
		menu = DefaultMenu
	}

	registry := stage.NewRegistry(menu)

	bound := make(ModelSet, len(registry))
	for name := range registry {
		m, ok := models[name]
		if !ok || m == nil {
			return nil, fmt.Errorf("chat model for stage %s is required", name)
		}
		withTools, err := m.WithTools(toolx.InfosFor(name))
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for stage=%s: %v", contract.ErrModelInvoke, name, err)
		}
		bound[name] = withTools
	}

	rt := &SessionRuntime{
		sess:   session.New(registry),
		models: models,
		bound:  bound,
		log:    logx.Component("runtime"),
	}

	handoffs, err := handoff.NewController(rt)
	if err != nil {
		return nil, err
	}
	rt.handoffs = handoffs

	dispatch, err := toolx.NewDispatcher(rt.sess, handoffs, records, assigner)
	if err != nil {
		return nil, err
	}
	rt.dispatch = dispatch

	turnRunner, err := rt.compileTurnGraph(ctx)
	if err != nil {
		return nil, err
	}
	rt.turnRunner = turnRunner

	return rt, nil
}

// NewFromConfig builds the per-stage models from the LLM config and wires a
// full runtime.
func NewFromConfig(
	ctx context.Context,
	llmCfg llmx.Config,
	records store.Store,
	assigner tables.Assigner,
	cfg Config,
) (*SessionRuntime, error) {
	if err := llmCfg.Validate(); err != nil {
		return nil, err
	}

	stages := []contract.StageName{
		contract.StageGreeter,
		contract.StageReservation,
		contract.StageTakeaway,
		contract.StageCheckout,
	}

	models := make(ModelSet, len(stages))
	for _, name := range stages {
		modelCfg := llmCfg.OpenRouterFor(name)
		m, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create model for stage=%s: %v", contract.ErrModelInvoke, name, err)
		}
		models[name] = m
	}

	return New(ctx, models, records, assigner, cfg)
}

func (r *SessionRuntime) Session() *session.Context {
	return r.sess
}

func (r *SessionRuntime) ActiveAgent() *stage.TaskAgent {
	return r.active
}

func (r *SessionRuntime) SetActiveAgent(a *stage.TaskAgent) {
	r.active = a
}

// LastReply is the most recent model utterance, including the one produced
// right after a hand-off.
func (r *SessionRuntime) LastReply() string {
	return r.lastReply
}

// Start activates the greeter and returns its opening utterance.
func (r *SessionRuntime) Start(ctx context.Context) (string, error) {
	if _, err := r.handoffs.Transfer(ctx, r.sess, contract.StageGreeter); err != nil {
		return "", err
	}
	return r.lastReply, nil
}

// HandleTurn processes one user utterance and returns the reply to speak.
func (r *SessionRuntime) HandleTurn(ctx context.Context, text string) (string, error) {
	out, err := r.turnRunner.Invoke(ctx, TurnInput{Text: text})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// GenerateReply renders the active agent's history into the model and logs
// the utterance back onto that history. With toolsEnabled=false the unbound
// model is used, so the turn cannot end in another tool call.
func (r *SessionRuntime) GenerateReply(ctx context.Context, toolsEnabled bool) (string, error) {
	if r.active == nil {
		return "", ErrNoActiveAgent
	}

	m := r.models[r.active.Name()]
	if toolsEnabled {
		m = r.bound[r.active.Name()]
	}
	if m == nil {
		return "", fmt.Errorf("%w: no model for stage=%s", contract.ErrModelInvoke, r.active.Name())
	}

	out, err := m.Generate(ctx, renderMessages(r.active.History()))
	if err != nil {
		return "", fmt.Errorf("%w: generate reply: %v", contract.ErrModelInvoke, err)
	}

	reply := strings.TrimSpace(out.Content)
	if reply != "" {
		r.active.History().AddMessage(history.RoleAssistant, reply)
		r.lastReply = reply
	}
	return reply, nil
}

func renderMessages(h *history.History) []*schema.Message {
	items := h.Items()
	msgs := make([]*schema.Message, 0, len(items))
	for _, e := range items {
		switch e.Role {
		case history.RoleSystem:
			msgs = append(msgs, schema.SystemMessage(e.Content))
		case history.RoleUser:
			msgs = append(msgs, schema.UserMessage(e.Content))
		default:
			msgs = append(msgs, schema.AssistantMessage(e.Content, nil))
		}
	}
	return msgs
}
