package contract

import "errors"

var (
	// ErrUnknownAgent means a hand-off targeted a stage that is not in the
	// session registry. This is a programming-contract violation, never a
	// user-facing condition.
	ErrUnknownAgent = errors.New("unknown target agent")

	ErrModelInvoke = errors.New("model invoke failed")
	ErrValidation  = errors.New("validation failed")
	ErrUnknownTool = errors.New("unknown tool")
)
