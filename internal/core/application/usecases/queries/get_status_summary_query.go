package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetStatusSummaryQueryIsNotConstructed = errors.New(
		"GetStatusSummaryQuery must be created via NewGetStatusSummaryQuery constructor",
	)
)

// GetStatusSummaryQuery aggregates the stored orders into per-status totals.
type GetStatusSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusSummaryQuery creates a query for the per-status summary.
func NewGetStatusSummaryQuery() GetStatusSummaryQuery {
	return GetStatusSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStatusSummaryQueryIsNotConstructed if validation fails.
func (q GetStatusSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusSummaryQueryIsNotConstructed)
}

// StatusSummaryEntry aggregates the orders sharing one status.
type StatusSummaryEntry struct {
	Status order.Status
	Count  int
	Total  float64
}

// GetStatusSummaryQueryResponse is the aggregated view over all orders.
//
// PerStatus holds one entry per status that currently has at least one
// order, ordered by status value. Completed counts the orders in a
// terminal status.
type GetStatusSummaryQueryResponse struct {
	PerStatus []StatusSummaryEntry
	Orders    int
	Completed int
}
