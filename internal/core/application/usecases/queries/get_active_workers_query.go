// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveWorkersQueryIsNotConstructed = errors.New(
	"GetActiveWorkersQuery must be created via NewGetActiveWorkersQuery constructor",
)

// GetActiveWorkersQuery retrieves the workers currently clocked in on a
// stage. A worker is listed while their individual session is Running or
// Paused; stopping the session removes them from the roster.
//
// Example:
//
//	query, err := NewGetActiveWorkersQuery(stageID)
//	if err != nil {
//	    return err
//	}
//
//	workers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list active workers: %w", err)
//	}
//
//	for _, w := range workers {
//	    fmt.Printf("%s: %d minutes on stage\n", w.UserName, w.ElapsedMinutes)
//	}
type GetActiveWorkersQuery struct { //nolint:recvcheck //using for validation
	stageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveWorkersQuery creates a query for one stage's live roster.
func NewGetActiveWorkersQuery(stageID kernel.UUID) (GetActiveWorkersQuery, error) {
	query := GetActiveWorkersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setStageID(stageID); err != nil {
		return GetActiveWorkersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveWorkersQueryIsNotConstructed if validation fails.
func (q GetActiveWorkersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveWorkersQueryIsNotConstructed)
}

// StageID returns the stage whose roster is requested.
func (q GetActiveWorkersQuery) StageID() kernel.UUID {
	return q.stageID
}

func (q *GetActiveWorkersQuery) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	q.stageID = stageID
	return nil
}

// GetActiveWorkersQueryResponse is one row of a stage's live roster.
// ElapsedMinutes is derived from the session clock at read time, so two
// consecutive reads of a running session report growing values. OrderNumber
// is empty for sessions that were started without an order pin.
type GetActiveWorkersQueryResponse struct {
	UserID         kernel.UUID
	UserName       string
	ElapsedMinutes int
	IsPaused       bool
	OrderNumber    string
}
