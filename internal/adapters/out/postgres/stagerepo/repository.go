package stagerepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"

	"gorm.io/gorm"
)

// GormStageRepository implements StageRepository using GORM.
type GormStageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStageRepository creates a new GORM stage repository.
func NewGormStageRepository(db *gorm.DB, tracker aggregateTracker) *GormStageRepository {
	return &GormStageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stage to the database. Used only by the bootstrap seed.
func (r *GormStageRepository) Add(ctx context.Context, aggregate *stage.Stage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetAll retrieves every stage ordered by position.
func (r *GormStageRepository) GetAll(ctx context.Context) ([]*stage.Stage, error) {
	var dtos []StageDTO
	if err := r.db.WithContext(ctx).Order("order_index").Find(&dtos).Error; err != nil {
		return nil, err
	}

	stages := make([]*stage.Stage, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}

	return stages, nil
}
