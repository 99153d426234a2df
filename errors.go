package efg

import (
	"fmt"
)

// UnsupportedNodeTypeError is returned when a node has an unrecognized type,
// or when an operation is invoked on a node of the wrong type.
type UnsupportedNodeTypeError struct {
	Type NodeType
	Op   string
}

func (e *UnsupportedNodeTypeError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("unsupported node type: %v", e.Type)
	}

	return fmt.Sprintf("%s is not supported on %v node", e.Op, e.Type)
}

// InvalidActionError is returned when an action outside of the legal
// actions is applied (or assigned positive probability) at a node.
type InvalidActionError struct {
	Player int
	Action Action
	Legal  []Action
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("action %d is not legal for player %d (legal: %v)",
		e.Action, e.Player, e.Legal)
}

// PolicyNormalizationError is returned when an action distribution contains
// a negative probability or its mass does not sum to 1 within tolerance.
// Chance outcome distributions are checked the same way, with Player set
// to ChancePlayer. A NaN entry is reported with a NaN Total.
type PolicyNormalizationError struct {
	Player int
	Total  float64
	// Negative is set if an individual entry was below zero.
	Negative bool
}

func (e *PolicyNormalizationError) Error() string {
	if e.Negative {
		return fmt.Sprintf("player %d distribution has a negative probability", e.Player)
	}

	return fmt.Sprintf("player %d distribution sums to %v, not 1", e.Player, e.Total)
}

// DepthBudgetExceededError is returned when a traversal descends past the
// configured MaxDepth.
type DepthBudgetExceededError struct {
	MaxDepth int
}

func (e *DepthBudgetExceededError) Error() string {
	return fmt.Sprintf("game tree exceeds max depth %d", e.MaxDepth)
}

// TraversalError annotates an error with the point in the game tree at
// which it occurred. The underlying error is available with errors.Cause.
type TraversalError struct {
	Depth   int
	Player  int
	InfoSet string
	Err     error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("depth %d, player %d, infoset %q: %v",
		e.Depth, e.Player, e.InfoSet, e.Err)
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *TraversalError) Cause() error { return e.Err }

// Unwrap supports errors.Is and errors.As.
func (e *TraversalError) Unwrap() error { return e.Err }
