package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTimerHistoryQuery_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetTimerHistoryQuery(userID, queries.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, userID, query.UserID())
	assert.Equal(t, queries.PeriodMonth, query.Period())
	require.NoError(t, query.Validate())
}

func TestNewGetTimerHistoryQuery_InvalidUserID(t *testing.T) {
	_, err := queries.NewGetTimerHistoryQuery(kernel.UUID{}, queries.PeriodDay)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetTimerHistoryQuery_InvalidPeriod(t *testing.T) {
	_, err := queries.NewGetTimerHistoryQuery(kernel.NewUUID(), queries.Period("always"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period")
}

func TestGetTimerHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetTimerHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetTimerHistoryQueryIsNotConstructed)
}
