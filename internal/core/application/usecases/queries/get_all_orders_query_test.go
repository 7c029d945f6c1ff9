package queries_test

import (
	"testing"

	"orderflow/internal/adapters/out/memory/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllOrdersQueryHandler_Handle_EmptyStore(t *testing.T) {
	ctx := t.Context()
	handler := queries.NewGetAllOrdersQueryHandler(orderrepo.NewInMemoryOrderRepository())

	result, err := handler.Handle(ctx, queries.NewGetAllOrdersQuery())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetAllOrdersQueryHandler_Handle_SortedByID(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewInMemoryOrderRepository()
	handler := queries.NewGetAllOrdersQueryHandler(repo)

	seedOrder(t, repo, "Alice", 10, order.Created)
	seedOrder(t, repo, "Bob", 20, order.Paid)
	seedOrder(t, repo, "Carol", 30, order.Cancelled)

	result, err := handler.Handle(ctx, queries.NewGetAllOrdersQuery())
	require.NoError(t, err)
	require.Len(t, result, 3)

	for i := range len(result) - 1 {
		assert.Less(t, result[i].ID, result[i+1].ID)
	}
	assert.Equal(t, "Alice", result[0].Customer)
	assert.Equal(t, order.Cancelled, result[2].Status)
}

func TestGetAllOrdersQueryHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	handler := queries.NewGetAllOrdersQueryHandler(orderrepo.NewInMemoryOrderRepository())

	_, err := handler.Handle(ctx, queries.GetAllOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrGetAllOrdersQueryIsNotConstructed)
}
