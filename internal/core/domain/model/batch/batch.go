package batch

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for batch operations.
var (
	// ErrOrderIDsAreRequired is returned when attempting to create a batch without member orders.
	ErrOrderIDsAreRequired = errs.NewValueIsRequiredError("orderIDs")
	// ErrCreatedAtIsRequired is returned when attempting to create a batch with a zero timestamp.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("createdAt")
	// ErrBatchIsNotConstructed is returned when using an improperly initialized Batch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
)

// Batch groups orders that move through the pipeline together under one
// shared work timer. It is an aggregate root that manages the member list,
// the batch's single stage position, and the shared clock all members observe.
//
// Key responsibilities:
//   - Managing batch identity and the member order list
//   - Holding the one stage position shared by every member order
//   - Running the shared clock workers join, pause, resume, and stop
//   - Marking the batch completed at the end of the pipeline
//
// Business rules:
//   - A batch must have a valid UUID and at least one member order
//   - The member list is fixed at creation and free of duplicates
//   - Joining a running or paused clock never resets it; only an idle
//     clock is started by a join
//   - Completion is terminal and happens at most once
//
// Who is currently working the batch is ledger state, not batch state; the
// aggregate deliberately carries no worker list.
//
// Example usage:
//
//	b, err := NewBatch(kernel.NewUUID(), orderIDs, entryStageID, time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
//	started, _ := b.StartTimerIfIdle(time.Now())
//	// started is true for the first worker, false for everyone after
type Batch struct {
	// id uniquely identifies the batch
	id kernel.UUID
	// orderIDs are the member orders moving together
	orderIDs []kernel.UUID
	// currentStageID is the single stage position shared by all members
	currentStageID kernel.UUID
	// clock is the shared work timer all members observe
	clock timer.Clock
	// completed marks the batch as finished at the end of the pipeline
	completed bool
	// createdAt is when the batch was assembled
	createdAt time.Time
	// guard ensures the batch was properly constructed
	guard guard.ConstructorGuard
}

// NewBatch creates a new Batch with the specified member orders.
// This is the only way to create a valid Batch instance.
//
// The shared clock starts idle; the first worker to join starts it.
//
// Parameters:
//   - id: Unique identifier for the batch (must be valid UUID)
//   - orderIDs: Member orders (at least one, no duplicates, all valid UUIDs)
//   - currentStageID: Stage the batch starts on (must be valid UUID)
//   - now: Creation timestamp (must be non-zero)
//
// Returns:
//   - *Batch: A fully initialized batch with an idle shared clock
//   - error: Validation error if any parameter is invalid
func NewBatch(id kernel.UUID, orderIDs []kernel.UUID, currentStageID kernel.UUID, now time.Time) (*Batch, error) {
	b := &Batch{
		clock: timer.NewClock(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderIDs(orderIDs),
		b.setCurrentStage(currentStageID),
		b.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBatch reconstructs a Batch from persistent storage, including the
// shared clock exactly as it was and the completion flag.
//
// Parameters:
//   - id: Unique identifier for the batch
//   - orderIDs: Member orders as persisted
//   - currentStageID: Stage the batch sits on
//   - clock: The shared clock in its persisted state
//   - completed: Whether the batch was already completed
//   - createdAt: Original creation timestamp
//
// Returns:
//   - *Batch: The restored batch if all validations pass
//   - error: Validation error if any field is invalid
func RestoreBatch(
	id kernel.UUID,
	orderIDs []kernel.UUID,
	currentStageID kernel.UUID,
	clock timer.Clock,
	completed bool,
	createdAt time.Time,
) (*Batch, error) {
	b, err := NewBatch(id, orderIDs, currentStageID, createdAt)
	if err != nil {
		return nil, err
	}

	if err := b.setClock(clock); err != nil {
		return nil, err
	}
	b.completed = completed

	return b, nil
}

// Validate ensures the Batch was properly constructed.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}

	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// IsEqual compares two batches by their unique identifiers.
func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// OrderIDs returns the member orders.
// The returned slice is a copy to prevent external modification.
func (b *Batch) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(b.orderIDs))
	copy(out, b.orderIDs)
	return out
}

// ContainsOrder reports whether the given order is a member of the batch.
func (b *Batch) ContainsOrder(orderID kernel.UUID) bool {
	for _, id := range b.orderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// CurrentStage returns the stage position shared by all member orders.
func (b *Batch) CurrentStage() kernel.UUID {
	return b.currentStageID
}

// Clock returns the shared work timer in its current state.
func (b *Batch) Clock() timer.Clock {
	return b.clock
}

// Completed reports whether the batch has been marked finished.
func (b *Batch) Completed() bool {
	return b.completed
}

// CreatedAt returns when the batch was assembled.
func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

// TimerElapsed returns the total time on the shared clock as of now:
// the banked time plus the running segment if the clock is running.
func (b *Batch) TimerElapsed(now time.Time) time.Duration {
	return b.clock.Elapsed(now)
}

// StartTimerIfIdle starts the shared clock when it is idle and reports
// whether this call started it.
//
// A worker joining a batch calls this: the first joiner starts the clock,
// later joiners find it running or paused and leave it untouched, so the
// started time and banked minutes are never reset by a join. Joining a
// batch whose clock was already stopped is an invalid state.
//
// Parameters:
//   - now: The start time for the clock if it is idle
//
// Returns:
//   - bool: true if this call started the clock
//   - error: Invalid-state error if the clock was already stopped
func (b *Batch) StartTimerIfIdle(now time.Time) (bool, error) {
	switch b.clock.State() {
	case timer.Running, timer.Paused:
		return false, nil
	default:
		clock, err := b.clock.Start(now)
		if err != nil {
			return false, err
		}
		b.clock = clock
		return true, nil
	}
}

// PauseTimer pauses the shared clock, banking the running segment.
// Fails with an invalid-state error unless the clock is running.
func (b *Batch) PauseTimer(now time.Time) error {
	clock, err := b.clock.Pause(now)
	if err != nil {
		return err
	}
	b.clock = clock
	return nil
}

// ResumeTimer resumes the shared clock from a pause.
// Fails with an invalid-state error unless the clock is paused.
func (b *Batch) ResumeTimer(now time.Time) error {
	clock, err := b.clock.Resume(now)
	if err != nil {
		return err
	}
	b.clock = clock
	return nil
}

// StopTimer stops the shared clock for good and returns the total banked
// time. Stopping is valid from running or paused; a second stop fails with
// an invalid-state error so the total is only taken once.
//
// Parameters:
//   - now: The stop time used to bank any running segment
//
// Returns:
//   - time.Duration: Total time banked on the clock
//   - error: Invalid-state error if the clock was not running or paused
func (b *Batch) StopTimer(now time.Time) (time.Duration, error) {
	clock, err := b.clock.Stop(now)
	if err != nil {
		return 0, err
	}
	b.clock = clock
	return clock.Accumulated(), nil
}

// AssignStage moves the batch onto the given stage. Member orders are moved
// by the coordinating service; the aggregate records the shared position.
//
// Parameters:
//   - stageID: The stage to move onto (must be valid UUID)
//
// Returns:
//   - nil on success
//   - error if the stage ID is invalid
func (b *Batch) AssignStage(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	b.currentStageID = stageID
	return nil
}

// MarkCompleted marks the batch finished. Completion is terminal; marking a
// completed batch again fails with an invalid-state error.
func (b *Batch) MarkCompleted() error {
	if b.completed {
		return errs.NewInvalidStateErrorWithCause("batch", fmt.Errorf("batch %s is already completed", b.id))
	}

	b.completed = true
	return nil
}

// setID validates and sets the batch's unique identifier.
// This is a private method used only during construction.
func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

// setOrderIDs validates and sets the member order list.
// This is a private method used only during construction.
func (b *Batch) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)

	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("orderIDs is invalid", fmt.Errorf("order %s appears more than once", id))
		}
		seen[id] = struct{}{}
	}

	b.orderIDs = ids
	return nil
}

// setCurrentStage validates and sets the batch's stage.
// This is a private method used only during construction.
func (b *Batch) setCurrentStage(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}
	b.currentStageID = stageID
	return nil
}

// setClock validates and sets the shared clock during restore.
// This is a private method used only during construction.
func (b *Batch) setClock(clock timer.Clock) error {
	if err := clock.Validate(); err != nil {
		return err
	}
	b.clock = clock
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
// This is a private method used only during construction.
func (b *Batch) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	b.createdAt = createdAt
	return nil
}
