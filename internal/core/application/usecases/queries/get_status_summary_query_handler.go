package queries

import (
	"context"
	"sort"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// GetStatusSummaryQueryHandler computes per-status aggregates over all
// stored orders.
//
// The aggregation runs over one GetAll snapshot, so the numbers are
// internally consistent even while orders transition concurrently.
type GetStatusSummaryQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetStatusSummaryQueryHandler creates a handler for summary queries.
func NewGetStatusSummaryQueryHandler(orders ports.OrderRepository) GetStatusSummaryQueryHandler {
	return GetStatusSummaryQueryHandler{orders: orders}
}

// Handle executes the query and returns per-status counts and monetary
// totals, plus the overall and completed order counts.
func (h GetStatusSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusSummaryQuery,
) (GetStatusSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatusSummaryQueryResponse{}, err
	}

	aggregates, err := h.orders.GetAll(ctx)
	if err != nil {
		return GetStatusSummaryQueryResponse{}, err
	}

	entries := make(map[order.Status]*StatusSummaryEntry)
	response := GetStatusSummaryQueryResponse{
		PerStatus: make([]StatusSummaryEntry, 0),
		Orders:    len(aggregates),
	}

	for _, aggregate := range aggregates {
		entry, ok := entries[aggregate.Status()]
		if !ok {
			entry = &StatusSummaryEntry{Status: aggregate.Status()}
			entries[aggregate.Status()] = entry
		}
		entry.Count++
		entry.Total += aggregate.Total()

		if aggregate.IsTerminal() {
			response.Completed++
		}
	}

	for _, entry := range entries {
		response.PerStatus = append(response.PerStatus, *entry)
	}
	sort.Slice(response.PerStatus, func(i, j int) bool {
		return response.PerStatus[i].Status < response.PerStatus[j].Status
	})

	return response, nil
}
