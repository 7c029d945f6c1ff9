package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/adapters/out/memory/orderrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAdvanceFixture(
	t *testing.T,
	delay time.Duration,
) (*orderrepo.InMemoryOrderRepository, *commands.AdvanceStaleOrdersCommandHandler) {
	t.Helper()
	repo := orderrepo.NewInMemoryOrderRepository()
	transitions := commands.NewTransitionOrderCommandHandler(repo, services.NewOrderLockRegistry())
	handler := commands.NewAdvanceStaleOrdersCommandHandler(
		repo, &transitions, order.Paid, order.Shipped, delay, discardLogger())
	return repo, handler
}

// seedOrder stores an order with the given status and last-modification age.
func seedOrder(t *testing.T, repo *orderrepo.InMemoryOrderRepository, id int64, status order.Status, age time.Duration) {
	t.Helper()
	stamp := time.Now().UTC().Add(-age)
	aggregate, err := order.RestoreOrder(id, "Alice", 10, status, stamp, stamp,
		[]order.StatusTransition{{Status: status, Timestamp: stamp}})
	require.NoError(t, err)
	_, err = repo.Save(t.Context(), aggregate)
	require.NoError(t, err)
}

func TestAdvanceStaleOrdersCommandHandler_Handle_AdvancesStaleOrders(t *testing.T) {
	ctx := t.Context()
	repo, handler := newAdvanceFixture(t, time.Minute)

	seedOrder(t, repo, 1, order.Paid, 2*time.Minute)
	seedOrder(t, repo, 2, order.Paid, time.Hour)

	advanced, err := handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 2, advanced)

	for _, id := range []int64{1, 2} {
		stored, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, order.Shipped, stored.Status())
		assert.True(t, handler.IsProcessed(id))
	}
}

func TestAdvanceStaleOrdersCommandHandler_Handle_SkipsYoungOrders(t *testing.T) {
	ctx := t.Context()
	repo, handler := newAdvanceFixture(t, time.Hour)

	seedOrder(t, repo, 1, order.Paid, time.Minute)

	advanced, err := handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	assert.Zero(t, advanced)

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, order.Paid, stored.Status())
	assert.False(t, handler.IsProcessed(1))
}

func TestAdvanceStaleOrdersCommandHandler_Handle_IgnoresOtherStatuses(t *testing.T) {
	ctx := t.Context()
	repo, handler := newAdvanceFixture(t, time.Minute)

	seedOrder(t, repo, 1, order.Created, time.Hour)
	seedOrder(t, repo, 2, order.Shipped, time.Hour)
	seedOrder(t, repo, 3, order.Cancelled, time.Hour)

	advanced, err := handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	assert.Zero(t, advanced)
	assert.Zero(t, handler.ProcessedCount())
}

func TestAdvanceStaleOrdersCommandHandler_Handle_SkipsAlreadyProcessed(t *testing.T) {
	ctx := t.Context()
	repo, handler := newAdvanceFixture(t, time.Minute)

	seedOrder(t, repo, 1, order.Paid, time.Hour)

	advanced, err := handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	require.Equal(t, 1, advanced)

	// Put the order back into the waiting status; the suppression set still
	// remembers the id, so a second scan leaves it alone.
	seedOrder(t, repo, 1, order.Paid, time.Hour)

	advanced, err = handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	assert.Zero(t, advanced)

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, order.Paid, stored.Status())
}

func TestAdvanceStaleOrdersCommandHandler_Reset(t *testing.T) {
	ctx := t.Context()
	repo, handler := newAdvanceFixture(t, time.Minute)

	seedOrder(t, repo, 1, order.Paid, time.Hour)

	_, err := handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	require.Equal(t, 1, handler.ProcessedCount())

	handler.Reset()
	assert.Zero(t, handler.ProcessedCount())
	assert.False(t, handler.IsProcessed(1))

	seedOrder(t, repo, 1, order.Paid, time.Hour)

	advanced, err := handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, advanced)
}

func TestAdvanceStaleOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	_, handler := newAdvanceFixture(t, time.Minute)

	_, err := handler.Handle(ctx, commands.AdvanceStaleOrdersCommand{})
	require.ErrorIs(t, err, commands.ErrAdvanceStaleOrdersCommandIsNotConstructed)
}
