package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in the initial status with freshly stamped timestamps;
// the repository assigns the identifier on first save.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(repository)
//	cmd, _ := NewCreateOrderCommand("Alice", 99.99)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.ID() is now assigned and created.Status() is the initial status
type CreateOrderCommandHandler struct {
	orders ports.OrderRepository
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(orders ports.OrderRepository) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders: orders,
	}
}

// Handle processes the order creation command.
// Builds the aggregate with the initial status and persists it; the stored
// order, now carrying its assigned identifier, is returned.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.Customer(), cmd.Total())
	if err != nil {
		return nil, err
	}

	return h.orders.Save(ctx, aggregate)
}
