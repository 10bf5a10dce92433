package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/history"
)

type TurnInput struct {
	Text string
}

type TurnOutput struct {
	Reply string
}

type turnState struct {
	Text     string
	ModelMsg *schema.Message
	Reply    string
}

func (r *SessionRuntime) compileTurnGraph(
	ctx context.Context,
) (compose.Runnable[TurnInput, TurnOutput], error) {
	graph := compose.NewGraph[TurnInput, TurnOutput]()

	if err := graph.AddLambdaNode("validate_turn",
		compose.InvokableLambda(func(ctx context.Context, in TurnInput) (*turnState, error) {
			text := strings.TrimSpace(in.Text)
			if text == "" {
				return nil, ErrInvalidMessage
			}
			if r.active == nil {
				return nil, ErrNoActiveAgent
			}
			return &turnState{Text: text}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_turn: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_model",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			r.active.History().AddMessage(history.RoleUser, in.Text)

			m := r.bound[r.active.Name()]
			if m == nil {
				return nil, fmt.Errorf("%w: no model for stage=%s", contract.ErrModelInvoke, r.active.Name())
			}
			out, err := m.Generate(ctx, renderMessages(r.active.History()))
			if err != nil {
				return nil, fmt.Errorf("%w: turn invoke: %v", contract.ErrModelInvoke, err)
			}
			if out == nil {
				return nil, fmt.Errorf("%w: empty model response", contract.ErrModelInvoke)
			}
			in.ModelMsg = out
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_model: %w", err)
	}

	if err := graph.AddLambdaNode("apply_tool_calls",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			return r.applyToolCalls(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node apply_tool_calls: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (TurnOutput, error) {
			reply := strings.TrimSpace(in.Reply)
			if reply == "" {
				return TurnOutput{}, fmt.Errorf("%w: turn produced no reply", contract.ErrValidation)
			}
			return TurnOutput{Reply: reply}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_turn"},
		{"validate_turn", "invoke_model"},
		{"invoke_model", "apply_tool_calls"},
		{"apply_tool_calls", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("session.turn"))
	if err != nil {
		return nil, fmt.Errorf("compile turn graph: %w", err)
	}
	return runner, nil
}

// applyToolCalls executes the model's tool calls in order. A hand-off mid
// turn swaps the active agent; the reply is then the utterance generated for
// the new stage rather than the transfer acknowledgement.
func (r *SessionRuntime) applyToolCalls(ctx context.Context, in *turnState) (*turnState, error) {
	msg := in.ModelMsg
	if msg == nil {
		return nil, fmt.Errorf("%w: missing model message", contract.ErrValidation)
	}

	if len(msg.ToolCalls) == 0 {
		reply := strings.TrimSpace(msg.Content)
		if reply == "" {
			return nil, fmt.Errorf("%w: model returned empty message", contract.ErrValidation)
		}
		r.active.History().AddMessage(history.RoleAssistant, reply)
		r.lastReply = reply
		in.Reply = reply
		return in, nil
	}

	caller := r.active
	for _, call := range msg.ToolCalls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contract.ErrValidation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contract.ErrValidation, name, err)
			}
		}

		// recorded before execution so a hand-off can carry it over
		caller.History().AddToolCall(fmt.Sprintf("%s(%s)", name, rawArgs))

		result, err := r.dispatch.Execute(ctx, caller, contract.ToolCall{
			ID:   call.ID,
			Name: name,
			Args: args,
		})
		if err != nil {
			return nil, err
		}
		in.Reply = result
	}

	if r.active != caller {
		// a hand-off generated the next stage's utterance
		in.Reply = r.lastReply
	}
	return in, nil
}
