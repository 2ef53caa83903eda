package commands_test

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderLifecycle struct{ mock.Mock }

func (m *MockOrderLifecycle) CreateOrder(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderLifecycle) RequestCancel(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCreateOrderCommand(id, "user-42", testItems(t))

	lifecycle := new(MockOrderLifecycle)
	lifecycle.On("CreateOrder", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			aggregate := args.Get(1).(*order.Order)
			require.True(t, aggregate.ID().IsEqual(id))
			require.Equal(t, order.Created, aggregate.Status())
		}).
		Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(lifecycle)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	lifecycle.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	lifecycle := new(MockOrderLifecycle)
	h := commands.NewCreateOrderCommandHandler(lifecycle)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	lifecycle.AssertNotCalled(t, "CreateOrder")
}

func TestCreateOrderCommandHandler_Handle_LifecycleError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-42", testItems(t))

	lifecycle := new(MockOrderLifecycle)
	lifecycle.On("CreateOrder", ctx, mock.AnythingOfType("*order.Order")).
		Return(errors.New("persistence error")).Once()

	h := commands.NewCreateOrderCommandHandler(lifecycle)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	lifecycle.AssertExpectations(t)
}
