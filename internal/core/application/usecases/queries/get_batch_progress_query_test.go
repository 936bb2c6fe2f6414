package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetBatchProgressQuery_ValidInput(t *testing.T) {
	batchID := kernel.NewUUID()

	query, err := queries.NewGetBatchProgressQuery(batchID)
	require.NoError(t, err)
	assert.Equal(t, batchID, query.BatchID())
	require.NoError(t, query.Validate())
}

func TestNewGetBatchProgressQuery_InvalidBatchID(t *testing.T) {
	_, err := queries.NewGetBatchProgressQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetBatchProgressQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetBatchProgressQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetBatchProgressQueryIsNotConstructed)
}
