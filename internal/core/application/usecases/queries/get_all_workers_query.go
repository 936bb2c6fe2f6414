package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAllWorkersQueryIsNotConstructed = errors.New(
		"GetAllWorkersQuery must be created via NewGetAllWorkersQuery constructor",
	)
)

// GetAllWorkersQuery retrieves the full worker roster.
// Returns worker identities and hourly rates for display and assignment.
//
// Example:
//
//	query := NewGetAllWorkersQuery()
//	handler := NewGetAllWorkersQueryHandler(db)
//
//	workers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve workers: %w", err)
//	}
//
//	for _, worker := range workers {
//	    fmt.Printf("%s earns %.2f/h\n", worker.Name, worker.HourlyRate)
//	}
type GetAllWorkersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllWorkersQuery creates a query to retrieve all workers.
// This is a parameterless query that fetches the complete roster.
func NewGetAllWorkersQuery() GetAllWorkersQuery {
	return GetAllWorkersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllWorkersQueryIsNotConstructed if validation fails.
func (q GetAllWorkersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllWorkersQueryIsNotConstructed)
}

// GetAllWorkersQueryResponse represents one worker in the read model.
type GetAllWorkersQueryResponse struct {
	ID         kernel.UUID
	Name       string
	HourlyRate float64
}
