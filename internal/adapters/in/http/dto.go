package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
)

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Customer string  `json:"customer"`
	Total    float64 `json:"total"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transition.
// Target is the canonical lower-case status name.
type TransitionOrderRequest struct {
	Target string `json:"target"`
}

// OrderResponse is the wire representation of a single order.
type OrderResponse struct {
	ID        int64                  `json:"id"`
	Customer  string                 `json:"customer"`
	Total     float64                `json:"total"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	History   []StatusChangeResponse `json:"status_history,omitempty"`
}

// StatusChangeResponse is one entry of an order's status history.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusSummaryResponse is the wire representation of the per-status summary.
type StatusSummaryResponse struct {
	Statuses  []StatusSummaryEntryResponse `json:"statuses"`
	Orders    int                          `json:"orders"`
	Completed int                          `json:"completed"`
}

// StatusSummaryEntryResponse aggregates the orders sharing one status.
type StatusSummaryEntryResponse struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

// Error is the uniform error body for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toOrderResponse(response queries.OrderResponse) OrderResponse {
	history := make([]StatusChangeResponse, 0, len(response.History))
	for _, change := range response.History {
		history = append(history, StatusChangeResponse{
			Status:    change.Status.String(),
			Timestamp: change.Timestamp,
		})
	}

	return OrderResponse{
		ID:        response.ID,
		Customer:  response.Customer,
		Total:     response.Total,
		Status:    response.Status.String(),
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
		History:   history,
	}
}

func toOrderResponseFromAggregate(aggregate *order.Order) OrderResponse {
	history := make([]StatusChangeResponse, 0, len(aggregate.History()))
	for _, change := range aggregate.History() {
		history = append(history, StatusChangeResponse{
			Status:    change.Status.String(),
			Timestamp: change.Timestamp,
		})
	}

	return OrderResponse{
		ID:        aggregate.ID(),
		Customer:  aggregate.Customer(),
		Total:     aggregate.Total(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		History:   history,
	}
}

func toOrderResponses(responses []queries.OrderResponse) []OrderResponse {
	out := make([]OrderResponse, 0, len(responses))
	for _, response := range responses {
		out = append(out, toOrderResponse(response))
	}
	return out
}
