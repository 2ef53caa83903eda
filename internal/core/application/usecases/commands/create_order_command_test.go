package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), 3)
	require.NoError(t, err)
	return []order.Item{item}
}

func TestNewCreateOrderCommand_Success(t *testing.T) {
	id := kernel.NewUUID()
	items := testItems(t)

	cmd, err := commands.NewCreateOrderCommand(id, "user-42", items)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "user-42", cmd.UserID())
	assert.Equal(t, items, cmd.Items())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "user-42", testItems(t))
	require.Error(t, err)
}

func TestNewCreateOrderCommand_EmptyUserID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", testItems(t))
	require.ErrorIs(t, err, commands.ErrUserIDIsRequired)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-42", nil)
	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_ZeroValueItem(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-42", []order.Item{{}})
	require.Error(t, err)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
