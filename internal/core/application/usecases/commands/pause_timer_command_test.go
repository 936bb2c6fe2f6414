package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPauseTimerCommand_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	stageID := kernel.NewUUID()

	cmd, err := commands.NewPauseTimerCommand(userID, stageID)
	require.NoError(t, err)
	assert.Equal(t, userID, cmd.UserID())
	assert.Equal(t, stageID, cmd.StageID())
}

func TestNewPauseTimerCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewPauseTimerCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestPauseTimerCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.PauseTimerCommand // zero-value command

	err := cmd.Validate()
	require.Error(t, err)
	assert.Equal(t, commands.ErrPauseTimerCommandIsNotConstructed, err)
}
