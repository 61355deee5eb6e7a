package order

import (
	"fmt"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
)

// transitions is the directed graph of legal status changes. Refunded is
// reachable only from completed; completed, cancelled and refunded have no
// outgoing edges.
var transitions = map[string][]string{
	model.OrderStatusPending:   {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusReady, model.OrderStatusCancelled},
	model.OrderStatusReady:     {model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusCompleted: {model.OrderStatusRefunded},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a conflict error describing the illegal move,
// or nil when the transition is allowed.
func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: cannot transition order from %s to %s", apperr.ErrConflict, from, to)
	}
	return nil
}
