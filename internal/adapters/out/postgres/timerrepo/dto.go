// Package timerrepo provides data transfer objects and mapping functions for the
// work-timer ledger: individual sessions, batch membership rows and the
// append-only log of completed work records. The three tables travel together
// because every timer stop writes across them in one transaction.
package timerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting individual
// work sessions. The clock is flattened into prefixed columns; the state
// column drives the single-active-session lookup.
type SessionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;index"`
	StageID     uuid.UUID  `gorm:"type:uuid;index"`
	OrderID     *uuid.UUID `gorm:"type:uuid"`
	OrderNumber string
	Clock       ClockDTO `gorm:"embedded;embeddedPrefix:clock_"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for session entities.
func (SessionDTO) TableName() string {
	return "timer_sessions"
}

// ClockDTO represents the embedded clock columns within the session table.
// StartedAt is set exactly while the clock is running; Accumulated banks the
// duration of completed run segments in nanoseconds.
type ClockDTO struct {
	State       int
	StartedAt   *time.Time
	Accumulated time.Duration
}

// BatchMemberDTO represents the database structure for batch membership rows.
// The pair of ids forms the key: a worker joins a batch at most once.
type BatchMemberDTO struct {
	BatchID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time
}

// TableName specifies the database table name for batch membership entities.
func (BatchMemberDTO) TableName() string {
	return "batch_workers"
}

// LogDTO represents the database structure for completed work records.
// Rows are written once when a timer stops and never change; the reporting
// queries read this table directly.
type LogDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;index"`
	StageID         uuid.UUID  `gorm:"type:uuid;index"`
	OrderID         *uuid.UUID `gorm:"type:uuid"`
	BatchID         *uuid.UUID `gorm:"type:uuid;index"`
	StartedAt       time.Time
	CompletedAt     time.Time `gorm:"index"`
	DurationMinutes int
	OrdersProcessed int
	ItemsProcessed  int
	IsManual        bool
}

// TableName specifies the database table name for work record entities.
func (LogDTO) TableName() string {
	return "timer_logs"
}

// fromSession converts a session domain aggregate to its database representation.
func fromSession(aggregate *timer.Session) SessionDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	clock := aggregate.Clock()
	return SessionDTO{
		ID:          aggregate.ID().Bytes(),
		UserID:      aggregate.UserID().Bytes(),
		StageID:     aggregate.StageID().Bytes(),
		OrderID:     orderID,
		OrderNumber: aggregate.OrderNumber(),
		Clock: ClockDTO{
			State:       int(clock.State()),
			StartedAt:   clock.StartedAt(),
			Accumulated: clock.Accumulated(),
		},
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toSession converts a database DTO to a session domain aggregate.
func toSession(dto SessionDTO) (*timer.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	stageID, err := kernel.UUIDFromBytes(dto.StageID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}

		orderID = &oID
	}

	clock, err := timer.RestoreClock(timer.State(dto.Clock.State), dto.Clock.StartedAt, dto.Clock.Accumulated)
	if err != nil {
		return nil, err
	}

	return timer.RestoreSession(id, userID, stageID, orderID, dto.OrderNumber, clock, dto.CreatedAt)
}

// fromMember converts a membership row to its database representation.
func fromMember(member *timer.BatchMember) BatchMemberDTO {
	return BatchMemberDTO{
		BatchID:  member.BatchID().Bytes(),
		UserID:   member.UserID().Bytes(),
		JoinedAt: member.JoinedAt(),
	}
}

// toMember converts a database DTO to a membership row.
func toMember(dto BatchMemberDTO) (*timer.BatchMember, error) {
	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return timer.NewBatchMember(batchID, userID, dto.JoinedAt)
}

// fromLog converts a completed work record to its database representation.
// There is no inverse: the log is append-only and read back only by SQL reports.
func fromLog(aggregate *timer.Log) LogDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	var batchID *uuid.UUID
	if id := aggregate.BatchID(); id != nil {
		raw := id.Bytes()
		batchID = &raw
	}

	return LogDTO{
		ID:              aggregate.ID().Bytes(),
		UserID:          aggregate.UserID().Bytes(),
		StageID:         aggregate.StageID().Bytes(),
		OrderID:         orderID,
		BatchID:         batchID,
		StartedAt:       aggregate.StartedAt(),
		CompletedAt:     aggregate.CompletedAt(),
		DurationMinutes: aggregate.DurationMinutes(),
		OrdersProcessed: aggregate.OrdersProcessed(),
		ItemsProcessed:  aggregate.ItemsProcessed(),
		IsManual:        aggregate.IsManual(),
	}
}
