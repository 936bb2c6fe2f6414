package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteBatchCommand_ValidInput(t *testing.T) {
	batchID := kernel.NewUUID()

	cmd, err := commands.NewCompleteBatchCommand(batchID)
	require.NoError(t, err)
	assert.Equal(t, batchID, cmd.BatchID())
}

func TestNewCompleteBatchCommand_InvalidBatchID(t *testing.T) {
	_, err := commands.NewCompleteBatchCommand(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCompleteBatchCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.CompleteBatchCommand // zero-value command

	err := cmd.Validate()
	require.Error(t, err)
	assert.Equal(t, commands.ErrCompleteBatchCommandIsNotConstructed, err)
}
