package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// GetOrdersByStatusQueryHandler lists orders filtered by their current status.
type GetOrdersByStatusQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrdersByStatusQueryHandler creates a handler for status-filtered listings.
func NewGetOrdersByStatusQueryHandler(orders ports.OrderRepository) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{orders: orders}
}

// Handle executes the query. Results are sorted by id; no match yields an
// empty, non-nil slice.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orders.GetAllInStatus(ctx, query.Status())
	if err != nil {
		return nil, err
	}

	return toOrderResponses(aggregates), nil
}
