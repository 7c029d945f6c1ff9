package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// GetAllOrdersQueryHandler lists every stored order through the repository port.
type GetAllOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetAllOrdersQueryHandler creates a handler for listing all orders.
func NewGetAllOrdersQueryHandler(orders ports.OrderRepository) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{orders: orders}
}

// Handle executes the query. Results are sorted by id; an empty store
// yields an empty, non-nil slice.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return toOrderResponses(aggregates), nil
}
