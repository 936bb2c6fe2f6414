package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJoinBatchTimerCommand_ValidInput(t *testing.T) {
	batchID := kernel.NewUUID()
	userID := kernel.NewUUID()

	cmd, err := commands.NewJoinBatchTimerCommand(batchID, userID)
	require.NoError(t, err)
	assert.Equal(t, batchID, cmd.BatchID())
	assert.Equal(t, userID, cmd.UserID())
}

func TestNewJoinBatchTimerCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewJoinBatchTimerCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestJoinBatchTimerCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.JoinBatchTimerCommand // zero-value command

	err := cmd.Validate()
	require.Error(t, err)
	assert.Equal(t, commands.ErrJoinBatchTimerCommandIsNotConstructed, err)
}
