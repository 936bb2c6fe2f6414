// Package batchrepo provides data transfer objects and mapping functions for batch persistence.
// This package implements the repository pattern for the batch domain aggregate, handling
// the conversion between domain entities and database representations.
package batchrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"

	"github.com/google/uuid"
)

// BatchDTO represents the database structure for persisting batch aggregates.
// The member order ids are stored as a JSONB document because the membership
// list is fixed at creation and always read as a whole. The shared clock is
// flattened into prefixed columns so the reporting queries can read its state
// without unpacking a document.
type BatchDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderIDs       []byte    `gorm:"type:jsonb"`
	CurrentStageID uuid.UUID `gorm:"type:uuid;index"`
	Clock          ClockDTO  `gorm:"embedded;embeddedPrefix:clock_"`
	Completed      bool      `gorm:"index"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "batches"
}

// ClockDTO represents the embedded shared-clock columns within the batch table.
// StartedAt is set exactly while the clock is running; Accumulated banks the
// duration of completed run segments in nanoseconds.
type ClockDTO struct {
	State       int
	StartedAt   *time.Time
	Accumulated time.Duration
}

// fromClock flattens a clock value object into its column representation.
func fromClock(clock timer.Clock) ClockDTO {
	return ClockDTO{
		State:       int(clock.State()),
		StartedAt:   clock.StartedAt(),
		Accumulated: clock.Accumulated(),
	}
}

// toClock reconstructs the clock value object from its column representation.
func toClock(dto ClockDTO) (timer.Clock, error) {
	return timer.RestoreClock(timer.State(dto.State), dto.StartedAt, dto.Accumulated)
}

// fromDomain converts a batch domain aggregate to its database representation.
func fromDomain(aggregate *batch.Batch) (BatchDTO, error) {
	ids := make([]string, 0, len(aggregate.OrderIDs()))
	for _, id := range aggregate.OrderIDs() {
		ids = append(ids, id.String())
	}

	orderIDs, err := json.Marshal(ids)
	if err != nil {
		return BatchDTO{}, err
	}

	return BatchDTO{
		ID:             aggregate.ID().Bytes(),
		OrderIDs:       orderIDs,
		CurrentStageID: aggregate.CurrentStage().Bytes(),
		Clock:          fromClock(aggregate.Clock()),
		Completed:      aggregate.Completed(),
		CreatedAt:      aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a batch domain aggregate.
// Reconstructs the complete aggregate including the shared clock using RestoreBatch.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stageID, err := kernel.UUIDFromBytes(dto.CurrentStageID[:])
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(dto.OrderIDs, &ids); err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(ids))
	for _, raw := range ids {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	clock, err := toClock(dto.Clock)
	if err != nil {
		return nil, err
	}

	return batch.RestoreBatch(id, orderIDs, stageID, clock, dto.Completed, dto.CreatedAt)
}
