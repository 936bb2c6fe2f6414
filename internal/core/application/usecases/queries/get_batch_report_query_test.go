package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetBatchReportQuery_ValidInput(t *testing.T) {
	batchID := kernel.NewUUID()

	query, err := queries.NewGetBatchReportQuery(batchID)
	require.NoError(t, err)
	assert.Equal(t, batchID, query.BatchID())
	require.NoError(t, query.Validate())
}

func TestNewGetBatchReportQuery_InvalidBatchID(t *testing.T) {
	_, err := queries.NewGetBatchReportQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetBatchReportQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetBatchReportQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetBatchReportQueryIsNotConstructed)
}
