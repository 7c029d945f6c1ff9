package queries_test

import (
	"testing"

	"orderflow/internal/adapters/out/memory/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusSummaryQueryHandler_Handle_EmptyStore(t *testing.T) {
	ctx := t.Context()
	handler := queries.NewGetStatusSummaryQueryHandler(orderrepo.NewInMemoryOrderRepository())

	summary, err := handler.Handle(ctx, queries.NewGetStatusSummaryQuery())
	require.NoError(t, err)
	assert.Zero(t, summary.Orders)
	assert.Zero(t, summary.Completed)
	assert.Empty(t, summary.PerStatus)
}

func TestGetStatusSummaryQueryHandler_Handle_Aggregates(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewInMemoryOrderRepository()
	handler := queries.NewGetStatusSummaryQueryHandler(repo)

	seedOrder(t, repo, "Alice", 10, order.Created)
	seedOrder(t, repo, "Bob", 20, order.Paid)
	seedOrder(t, repo, "Carol", 30, order.Paid)
	seedOrder(t, repo, "Dave", 40, order.Delivered)
	seedOrder(t, repo, "Eve", 50, order.Cancelled)

	summary, err := handler.Handle(ctx, queries.NewGetStatusSummaryQuery())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Orders)
	assert.Equal(t, 2, summary.Completed)

	byStatus := make(map[order.Status]queries.StatusSummaryEntry)
	for _, entry := range summary.PerStatus {
		byStatus[entry.Status] = entry
	}
	require.Len(t, byStatus, 4)

	assert.Equal(t, 1, byStatus[order.Created].Count)
	assert.InDelta(t, 10.0, byStatus[order.Created].Total, 0.0001)
	assert.Equal(t, 2, byStatus[order.Paid].Count)
	assert.InDelta(t, 50.0, byStatus[order.Paid].Total, 0.0001)
	assert.Equal(t, 1, byStatus[order.Delivered].Count)
	assert.Equal(t, 1, byStatus[order.Cancelled].Count)

	// Entries come back ordered by status value.
	for i := range len(summary.PerStatus) - 1 {
		assert.Less(t, summary.PerStatus[i].Status, summary.PerStatus[i+1].Status)
	}
}

func TestGetStatusSummaryQueryHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	handler := queries.NewGetStatusSummaryQueryHandler(orderrepo.NewInMemoryOrderRepository())

	_, err := handler.Handle(ctx, queries.GetStatusSummaryQuery{})
	require.ErrorIs(t, err, queries.ErrGetStatusSummaryQueryIsNotConstructed)
}
