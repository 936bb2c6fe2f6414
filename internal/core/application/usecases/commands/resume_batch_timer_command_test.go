package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeBatchTimerCommand_ValidInput(t *testing.T) {
	batchID := kernel.NewUUID()
	userID := kernel.NewUUID()

	cmd, err := commands.NewResumeBatchTimerCommand(batchID, userID)
	require.NoError(t, err)
	assert.Equal(t, batchID, cmd.BatchID())
	assert.Equal(t, userID, cmd.UserID())
}

func TestNewResumeBatchTimerCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewResumeBatchTimerCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestResumeBatchTimerCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.ResumeBatchTimerCommand // zero-value command

	err := cmd.Validate()
	require.Error(t, err)
	assert.Equal(t, commands.ErrResumeBatchTimerCommandIsNotConstructed, err)
}
