package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// ProductionTime is the upstream production ledger's record for a batch:
// time and cost spent before the batch entered fulfillment. It is merged
// into batch reports for display only and never feeds back into this
// service's own ledger.
type ProductionTime struct {
	TotalMinutes int
	TotalCost    float64
	WorkerCount  int
}

// ProductionTimeGateway is the read-only contract to the upstream
// production ledger. An absent record is a normal outcome for batches that
// skipped production, reported as ObjectNotFoundError and tolerated by
// callers.
type ProductionTimeGateway interface {
	// GetForBatch retrieves the production time record for a batch.
	GetForBatch(ctx context.Context, batchID kernel.UUID) (*ProductionTime, error)
}
