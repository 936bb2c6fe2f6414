package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarkItemCompleteCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	userID := kernel.NewUUID()

	cmd, err := commands.NewMarkItemCompleteCommand(orderID, userID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, userID, cmd.UserID())
	assert.Equal(t, 2, cmd.ItemIndex())
	assert.True(t, cmd.IsComplete())
}

func TestNewMarkItemCompleteCommand_NegativeItemIndex(t *testing.T) {
	_, err := commands.NewMarkItemCompleteCommand(kernel.NewUUID(), kernel.NewUUID(), -1, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMarkItemCompleteCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.MarkItemCompleteCommand // zero-value command

	err := cmd.Validate()
	require.Error(t, err)
	assert.Equal(t, commands.ErrMarkItemCompleteCommandIsNotConstructed, err)
}
