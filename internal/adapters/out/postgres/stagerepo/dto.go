// Package stagerepo provides data transfer objects and mapping functions for stage persistence.
// Stages are seeded once at bootstrap and read back at startup to build the
// stage graph, so the table is small and effectively immutable at runtime.
package stagerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"

	"github.com/google/uuid"
)

// StageDTO represents the database structure for persisting pipeline stages.
type StageDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	OrderIndex        int `gorm:"uniqueIndex"`
	Color             string
	IsTerminal        bool
	RequiresWorksheet bool
}

// TableName specifies the database table name for stage entities.
func (StageDTO) TableName() string {
	return "stages"
}

// fromDomain converts a stage domain entity to its database representation.
func fromDomain(aggregate *stage.Stage) StageDTO {
	return StageDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		OrderIndex:        aggregate.OrderIndex(),
		Color:             aggregate.Color(),
		IsTerminal:        aggregate.IsTerminal(),
		RequiresWorksheet: aggregate.RequiresWorksheet(),
	}
}

// toDomain converts a database DTO to a stage domain entity.
func toDomain(dto StageDTO) (*stage.Stage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return stage.NewStage(id, dto.Name, dto.OrderIndex, dto.Color, dto.IsTerminal, dto.RequiresWorksheet)
}
