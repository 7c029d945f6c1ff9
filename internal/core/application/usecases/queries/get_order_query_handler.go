package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// GetOrderQueryHandler serves single-order lookups through the repository port.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle executes the query.
//
// Returns:
//   - the order's read model on success
//   - errs.ObjectNotFoundError if no order has the given id
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return toOrderResponse(aggregate), nil
}
