package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBatchProgressQueryIsNotConstructed = errors.New(
	"GetBatchProgressQuery must be created via NewGetBatchProgressQuery constructor",
)

// GetBatchProgressQuery retrieves the live progress view for one batch:
// its stage, per-order worksheet counts, the shared clock, and the workers
// currently joined to the timer.
//
// Example:
//
//	query, err := NewGetBatchProgressQuery(batchID)
//	if err != nil {
//	    return err
//	}
//
//	progress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load batch progress: %w", err)
//	}
//
//	fmt.Printf("%d/%d items done\n", progress.ItemsDone, progress.ItemsNeeded)
type GetBatchProgressQuery struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBatchProgressQuery creates a progress query for one batch.
func NewGetBatchProgressQuery(batchID kernel.UUID) (GetBatchProgressQuery, error) {
	query := GetBatchProgressQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setBatchID(batchID); err != nil {
		return GetBatchProgressQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBatchProgressQueryIsNotConstructed if validation fails.
func (q GetBatchProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchProgressQueryIsNotConstructed)
}

// BatchID returns the batch whose progress is requested.
func (q GetBatchProgressQuery) BatchID() kernel.UUID {
	return q.batchID
}

func (q *GetBatchProgressQuery) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	q.batchID = batchID
	return nil
}

// BatchOrderProgress is one member order's worksheet progress.
type BatchOrderProgress struct {
	OrderID           kernel.UUID
	Number            string
	ItemsDone         int
	ItemsNeeded       int
	WorksheetComplete bool
}

// BatchWorkerPresence is one worker currently joined to the batch timer.
type BatchWorkerPresence struct {
	UserID   kernel.UUID
	UserName string
	JoinedAt time.Time
}

// GetBatchProgressQueryResponse is the live progress read model for one
// batch. ElapsedMinutes is derived from the shared clock at read time.
type GetBatchProgressQueryResponse struct {
	BatchID        kernel.UUID
	CurrentStageID kernel.UUID
	StageName      string
	Completed      bool
	ClockState     timer.State
	ElapsedMinutes int
	ItemsDone      int
	ItemsNeeded    int
	Orders         []BatchOrderProgress
	ActiveWorkers  []BatchWorkerPresence
}
