package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCancelOrderCommand(id)

	lifecycle := new(MockOrderLifecycle)
	lifecycle.On("RequestCancel", ctx, id).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(lifecycle)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	lifecycle.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelOrderCommand{} // not constructed properly

	lifecycle := new(MockOrderLifecycle)
	h := commands.NewCancelOrderCommandHandler(lifecycle)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	lifecycle.AssertNotCalled(t, "RequestCancel")
}

func TestCancelOrderCommandHandler_Handle_LifecycleErrorPropagates(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCancelOrderCommand(id)

	lifecycle := new(MockOrderLifecycle)
	lifecycle.On("RequestCancel", ctx, id).
		Return(errs.NewObjectNotFoundError("orderId", id.String())).Once()

	h := commands.NewCancelOrderCommandHandler(lifecycle)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	lifecycle.AssertExpectations(t)
}
