// Package workerrepo provides data transfer objects and mapping functions for worker persistence.
package workerrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure for persisting workers.
// The hourly rate is stored as a plain float because it only feeds
// report arithmetic, never money movement.
type WorkerDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	HourlyRate float64
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

// fromDomain converts a worker domain entity to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	return WorkerDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		HourlyRate: aggregate.HourlyRate(),
	}
}

// toDomain converts a database DTO to a worker domain entity.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return worker.NewWorker(id, dto.Name, dto.HourlyRate)
}
