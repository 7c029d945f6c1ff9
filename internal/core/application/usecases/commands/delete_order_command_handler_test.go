package commands_test

import (
	"testing"

	"orderflow/internal/adapters/out/memory/orderrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewInMemoryOrderRepository()
	handler := commands.NewDeleteOrderCommandHandler(repo, services.NewOrderLockRegistry())
	created := createOrder(t, repo)

	cmd, err := commands.NewDeleteOrderCommand(created.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	_, err = repo.Get(ctx, created.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewInMemoryOrderRepository()
	handler := commands.NewDeleteOrderCommandHandler(repo, services.NewOrderLockRegistry())

	cmd, err := commands.NewDeleteOrderCommand(777)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteOrderCommandHandler_Handle_SecondDeleteFails(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewInMemoryOrderRepository()
	handler := commands.NewDeleteOrderCommandHandler(repo, services.NewOrderLockRegistry())
	created := createOrder(t, repo)

	cmd, err := commands.NewDeleteOrderCommand(created.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	assert.ErrorIs(t, handler.Handle(ctx, cmd), errs.ErrObjectNotFound)
}

func TestDeleteOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewInMemoryOrderRepository()
	handler := commands.NewDeleteOrderCommandHandler(repo, services.NewOrderLockRegistry())

	err := handler.Handle(ctx, commands.DeleteOrderCommand{})
	require.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)
}
