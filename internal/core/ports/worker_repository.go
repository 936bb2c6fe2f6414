package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for workers.
// Workers carry the hourly rate used by the labor cost reports.
type WorkerRepository interface {
	// Add persists a new worker.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetAll retrieves every worker ordered by name.
	GetAll(ctx context.Context) ([]*worker.Worker, error)
}
