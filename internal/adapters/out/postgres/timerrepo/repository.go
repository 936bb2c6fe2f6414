package timerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session to the database.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *timer.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromSession(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing session to the database. All columns are written,
// including ones holding zero values, because pausing the clock clears
// clock_started_at and that NULL must reach the row.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *timer.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromSession(aggregate)
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// FindActiveByUser retrieves the user's single running or paused session.
// Returns ObjectNotFoundError when the user has no active timer.
func (r *GormSessionRepository) FindActiveByUser(ctx context.Context, userID kernel.UUID) (*timer.Session, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	activeStates := []int{int(timer.Running), int(timer.Paused)}

	var dto SessionDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ? AND clock_state IN ?", userID.Bytes(), activeStates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", userID.String())
		}
		return nil, err
	}

	return toSession(dto)
}

// GormBatchMemberRepository implements BatchMemberRepository using GORM.
type GormBatchMemberRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormBatchMemberRepository creates a new GORM batch membership repository.
func NewGormBatchMemberRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchMemberRepository {
	return &GormBatchMemberRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new membership row to the database. Joining the same batch
// twice trips the composite key and is reported as a conflict, covering the
// race two concurrent join requests can produce.
func (r *GormBatchMemberRepository) Add(ctx context.Context, member *timer.BatchMember) error {
	if err := member.Validate(); err != nil {
		return err
	}

	dto := fromMember(member)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("batch member", err)
		}
		return err
	}

	r.tracker.TrackAggregate(member.BatchID(), member)
	return nil
}

// Find retrieves one worker's membership of a batch.
// Returns ObjectNotFoundError when the worker has not joined.
func (r *GormBatchMemberRepository) Find(ctx context.Context, batchID, userID kernel.UUID) (*timer.BatchMember, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto BatchMemberDTO
	err := r.db.WithContext(ctx).First(&dto, "batch_id = ? AND user_id = ?", batchID.Bytes(), userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch member", userID.String())
		}
		return nil, err
	}

	return toMember(dto)
}

// GetAllForBatch retrieves every current member of a batch ordered by join time.
func (r *GormBatchMemberRepository) GetAllForBatch(ctx context.Context, batchID kernel.UUID) ([]*timer.BatchMember, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BatchMemberDTO
	if err := r.db.WithContext(ctx).Order("joined_at").Find(&dtos, "batch_id = ?", batchID.Bytes()).Error; err != nil {
		return nil, err
	}

	members := make([]*timer.BatchMember, 0, len(dtos))
	for _, dto := range dtos {
		member, err := toMember(dto)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

// Remove deletes one worker's membership.
// Removing a worker who is not a member is not an error.
func (r *GormBatchMemberRepository) Remove(ctx context.Context, batchID, userID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("batch_id = ? AND user_id = ?", batchID.Bytes(), userID.Bytes()).
		Delete(&BatchMemberDTO{}).Error
}

// RemoveAllForBatch clears the membership ledger for a batch.
func (r *GormBatchMemberRepository) RemoveAllForBatch(ctx context.Context, batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("batch_id = ?", batchID.Bytes()).
		Delete(&BatchMemberDTO{}).Error
}

// GormLogRepository implements LogRepository using GORM.
// The log is append-only, so the repository exposes no update or delete.
type GormLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormLogRepository creates a new GORM work record repository.
func NewGormLogRepository(db *gorm.DB, tracker aggregateTracker) *GormLogRepository {
	return &GormLogRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a completed work record to the database.
func (r *GormLogRepository) Add(ctx context.Context, aggregate *timer.Log) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromLog(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
