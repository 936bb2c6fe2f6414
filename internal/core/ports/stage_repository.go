package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/stage"
)

// StageRepository defines the persistence contract for pipeline stages.
// Stages are written once at bootstrap and read once at startup to build
// the stage graph; a reconfiguration requires a restart.
type StageRepository interface {
	// Add persists a new stage. Used only by the bootstrap seed.
	Add(ctx context.Context, aggregate *stage.Stage) error

	// GetAll retrieves every stage ordered by position.
	// Returns an empty slice when the pipeline has not been seeded yet.
	GetAll(ctx context.Context) ([]*stage.Stage, error)
}
