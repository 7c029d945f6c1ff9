package commands

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// DeleteOrderCommandHandler handles permanent order removal.
//
// Deletion holds the same per-order handle as transitions, so a delete can
// never interleave with a transition's read-validate-write window on the
// same order. Existence is checked under the lock; the storage-level delete
// itself is idempotent, which keeps "not found" semantics here in the
// service layer.
type DeleteOrderCommandHandler struct {
	orders ports.OrderRepository
	locks  *services.OrderLockRegistry
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
// The lock registry must be the same instance used by the transition handler.
func NewDeleteOrderCommandHandler(
	orders ports.OrderRepository,
	locks *services.OrderLockRegistry,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		orders: orders,
		locks:  locks,
	}
}

// Handle processes the deletion command.
//
// Returns:
//   - nil on successful removal
//   - errs.ObjectNotFoundError if no order has the given id
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	if _, err := h.orders.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return h.orders.Delete(ctx, cmd.OrderID())
}
