package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// TransitionOrderCommandHandler is the single entry point for order status
// changes. It is safe under arbitrary concurrent invocation, including
// multiple concurrent calls for the same order and for different orders.
//
// Protocol, per call:
//  1. acquire the per-order handle from the lock registry (created
//     atomically on first use; acquisition blocks indefinitely);
//  2. holding it, fetch the current persisted order — absent orders fail
//     with errs.ObjectNotFoundError;
//  3. apply the transition through the aggregate, which validates against
//     the state machine; a rejected move fails with
//     order.InvalidTransitionError carrying (id, from, to);
//  4. persist the mutated aggregate, release, return the updated order.
//
// Because the fetch happens after lock acquisition, validation always sees
// the freshest committed state for that order: two callers racing the same
// order serialize, exactly one wins, and the loser's validation runs
// against the winner's committed status. Both failure kinds leave storage
// unmodified, and neither is retried here.
type TransitionOrderCommandHandler struct {
	orders ports.OrderRepository
	locks  *services.OrderLockRegistry
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// The lock registry must be the same instance shared with every other
// handler that mutates orders (deletion in particular).
func NewTransitionOrderCommandHandler(
	orders ports.OrderRepository,
	locks *services.OrderLockRegistry,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		orders: orders,
		locks:  locks,
	}
}

// Handle processes the transition command and returns the updated order.
//
// Returns:
//   - the updated order on success
//   - errs.ObjectNotFoundError if no order has the given id
//   - order.InvalidTransitionError if the state machine rejects the move
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !aggregate.TransitionTo(cmd.Target()) {
		return nil, order.NewInvalidTransitionError(cmd.OrderID(), aggregate.Status(), cmd.Target())
	}

	return h.orders.Save(ctx, aggregate)
}
