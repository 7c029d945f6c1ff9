// Package queries contains read-only operations over stored orders.
// Implements the query side of the CQRS split: handlers read through the
// repository port and map aggregates into flat response structs, so every
// storage backend serves the same read API.
package queries

import (
	"sort"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// OrderResponse is the flattened read model of a single order.
type OrderResponse struct {
	ID        int64
	Customer  string
	Total     float64
	Status    order.Status
	CreatedAt time.Time
	UpdatedAt time.Time
	History   []StatusChangeResponse
}

// StatusChangeResponse is one entry of an order's status history.
type StatusChangeResponse struct {
	Status    order.Status
	Timestamp time.Time
}

func toOrderResponse(aggregate *order.Order) OrderResponse {
	history := make([]StatusChangeResponse, 0, len(aggregate.History()))
	for _, change := range aggregate.History() {
		history = append(history, StatusChangeResponse{
			Status:    change.Status,
			Timestamp: change.Timestamp,
		})
	}

	return OrderResponse{
		ID:        aggregate.ID(),
		Customer:  aggregate.Customer(),
		Total:     aggregate.Total(),
		Status:    aggregate.Status(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		History:   history,
	}
}

// toOrderResponses maps and sorts by id for deterministic output across
// backends that do not guarantee iteration order.
func toOrderResponses(aggregates []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		responses = append(responses, toOrderResponse(aggregate))
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].ID < responses[j].ID })
	return responses
}
