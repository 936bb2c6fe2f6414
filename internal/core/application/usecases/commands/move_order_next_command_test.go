package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoveOrderNextCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	userID := kernel.NewUUID()

	cmd, err := commands.NewMoveOrderNextCommand(orderID, userID)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, userID, cmd.UserID())
}

func TestNewMoveOrderNextCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewMoveOrderNextCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestMoveOrderNextCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.MoveOrderNextCommand // zero-value command

	err := cmd.Validate()
	require.Error(t, err)
	assert.Equal(t, commands.ErrMoveOrderNextCommandIsNotConstructed, err)
}
