package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllWorkersQuery_Valid(t *testing.T) {
	query := queries.NewGetAllWorkersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetAllWorkersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllWorkersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllWorkersQueryIsNotConstructed)
}
