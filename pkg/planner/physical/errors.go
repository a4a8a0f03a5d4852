package physical

import "errors"

var (
	// ErrUnsupportedExpression is returned when an expression has no remote
	// equivalent and cannot be translated. The host engine can recover by
	// evaluating the expression locally.
	ErrUnsupportedExpression = errors.New("unsupported expression")

	// ErrUnsupportedPushdown is returned when no rule converts an operator.
	// The host engine can recover by executing the operator locally.
	ErrUnsupportedPushdown = errors.New("unsupported pushdown")

	// ErrInvariantViolation is returned when a plan reaches a state the
	// conversion relies on never happening. It indicates a bug in the
	// planner, not an unsupported query, and is never recoverable.
	ErrInvariantViolation = errors.New("invariant violation")
)
