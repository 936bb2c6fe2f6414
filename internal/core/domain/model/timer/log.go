package timer

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLogIsNotConstructed is returned when using an improperly initialized Log.
var ErrLogIsNotConstructed = errors.New("Log must be created via NewLog")

// Log is one finalized, immutable ledger entry. A log is cut exactly once,
// when a session or shared batch timer stops, and is never mutated afterward.
// Reports are computed exclusively from logs.
type Log struct {
	// id uniquely identifies the entry
	id kernel.UUID
	// userID is the worker the tracked time belongs to
	userID kernel.UUID
	// stageID is the stage the time is billed to
	stageID kernel.UUID
	// orderID is the pinned order for individual order work, nil otherwise
	orderID *kernel.UUID
	// batchID is the batch for shared batch work, nil otherwise
	batchID *kernel.UUID
	// startedAt is when tracking began
	startedAt time.Time
	// completedAt is when tracking stopped
	completedAt time.Time
	// durationMinutes is the banked duration, at minute granularity
	durationMinutes int
	// ordersProcessed is the reported order throughput for the entry
	ordersProcessed int
	// itemsProcessed is the reported item throughput for the entry
	itemsProcessed int
	// isManual marks hand-entered or corrected entries
	isManual bool
	// guard ensures the log was properly constructed
	guard guard.ConstructorGuard
}

// NewLog creates a ledger entry with validation.
//
// Returns:
//   - *Log: The entry if all validations pass
//   - error: Validation error if any field is invalid
func NewLog(
	id, userID, stageID kernel.UUID,
	orderID, batchID *kernel.UUID,
	startedAt, completedAt time.Time,
	durationMinutes, ordersProcessed, itemsProcessed int,
	isManual bool,
) (*Log, error) {
	log := &Log{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		log.setID(id),
		log.setUserID(userID),
		log.setStageID(stageID),
		log.setOrderID(orderID),
		log.setBatchID(batchID),
		log.setInterval(startedAt, completedAt),
		log.setDurationMinutes(durationMinutes),
		log.setCounts(ordersProcessed, itemsProcessed),
	); err != nil {
		return nil, err
	}
	log.isManual = isManual

	return log, nil
}

// Validate checks if the Log was properly constructed.
func (l *Log) Validate() error {
	if l == nil {
		return ErrLogIsNotConstructed
	}
	return l.guard.Validate(ErrLogIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (l *Log) ID() kernel.UUID {
	return l.id
}

// UserID returns the worker the tracked time belongs to.
func (l *Log) UserID() kernel.UUID {
	return l.userID
}

// StageID returns the stage the time is billed to.
func (l *Log) StageID() kernel.UUID {
	return l.stageID
}

// OrderID returns the pinned order, or nil.
func (l *Log) OrderID() *kernel.UUID {
	return l.orderID
}

// BatchID returns the batch for shared batch work, or nil.
func (l *Log) BatchID() *kernel.UUID {
	return l.batchID
}

// StartedAt returns when tracking began.
func (l *Log) StartedAt() time.Time {
	return l.startedAt
}

// CompletedAt returns when tracking stopped.
func (l *Log) CompletedAt() time.Time {
	return l.completedAt
}

// DurationMinutes returns the banked duration at minute granularity.
func (l *Log) DurationMinutes() int {
	return l.durationMinutes
}

// OrdersProcessed returns the reported order throughput.
func (l *Log) OrdersProcessed() int {
	return l.ordersProcessed
}

// ItemsProcessed returns the reported item throughput.
func (l *Log) ItemsProcessed() int {
	return l.itemsProcessed
}

// IsManual reports whether the entry was hand-entered or corrected.
func (l *Log) IsManual() bool {
	return l.isManual
}

// setID sets the entry identifier with validation.
// This is an internal setter used during construction.
func (l *Log) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

// setUserID sets the owning worker with validation.
// This is an internal setter used during construction.
func (l *Log) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	l.userID = userID
	return nil
}

// setStageID sets the billed stage with validation.
// This is an internal setter used during construction.
func (l *Log) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}
	l.stageID = stageID
	return nil
}

// setOrderID sets the optional pinned order with validation.
// This is an internal setter used during construction.
func (l *Log) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	l.orderID = &id
	return nil
}

// setBatchID sets the optional batch reference with validation.
// This is an internal setter used during construction.
func (l *Log) setBatchID(batchID *kernel.UUID) error {
	if batchID == nil {
		return nil
	}
	if err := batchID.Validate(); err != nil {
		return err
	}
	id := *batchID
	l.batchID = &id
	return nil
}

// setInterval sets the tracking interval with validation.
// This is an internal setter used during construction.
func (l *Log) setInterval(startedAt, completedAt time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completedAt")
	}
	if completedAt.Before(startedAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"completedAt is invalid",
			fmt.Errorf("%s is before startedAt %s", completedAt.Format(time.RFC3339), startedAt.Format(time.RFC3339)),
		)
	}
	l.startedAt = startedAt
	l.completedAt = completedAt
	return nil
}

// setDurationMinutes sets the banked duration with validation.
// This is an internal setter used during construction.
func (l *Log) setDurationMinutes(durationMinutes int) error {
	if durationMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"durationMinutes is invalid",
			fmt.Errorf("%d is negative", durationMinutes),
		)
	}
	l.durationMinutes = durationMinutes
	return nil
}

// setCounts sets the throughput counters with validation.
// This is an internal setter used during construction.
func (l *Log) setCounts(ordersProcessed, itemsProcessed int) error {
	if ordersProcessed < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"ordersProcessed is invalid",
			fmt.Errorf("%d is negative", ordersProcessed),
		)
	}
	if itemsProcessed < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemsProcessed is invalid",
			fmt.Errorf("%d is negative", itemsProcessed),
		)
	}
	l.ordersProcessed = ordersProcessed
	l.itemsProcessed = itemsProcessed
	return nil
}
