package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
)

// BatchMemberRepository defines the persistence contract for the batch
// membership ledger. A batch's active worker list is always derived from
// these rows; the batch aggregate itself never stores it.
type BatchMemberRepository interface {
	// Add persists a new membership row.
	Add(ctx context.Context, member *timer.BatchMember) error

	// Find retrieves one worker's membership of a batch.
	// Returns ObjectNotFoundError when the worker has not joined.
	Find(ctx context.Context, batchID, userID kernel.UUID) (*timer.BatchMember, error)

	// GetAllForBatch retrieves every current member of a batch
	// ordered by join time.
	GetAllForBatch(ctx context.Context, batchID kernel.UUID) ([]*timer.BatchMember, error)

	// Remove deletes one worker's membership. Removing a worker who is
	// not a member is not an error.
	Remove(ctx context.Context, batchID, userID kernel.UUID) error

	// RemoveAllForBatch clears the ledger for a batch. Called when the
	// shared clock stops and every member's work record has been written.
	RemoveAllForBatch(ctx context.Context, batchID kernel.UUID) error
}
