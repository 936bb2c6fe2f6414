package timer

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrBatchMemberIsNotConstructed is returned when using an improperly initialized BatchMember.
var ErrBatchMemberIsNotConstructed = errors.New("BatchMember must be created via NewBatchMember")

// BatchMember records one worker's membership of a shared batch timer. The
// ledger owns these rows; a batch's active worker list is always derived
// from them, never stored on the batch itself.
type BatchMember struct {
	// batchID is the batch whose shared clock the worker observes
	batchID kernel.UUID
	// userID is the member worker
	userID kernel.UUID
	// joinedAt is when the worker joined
	joinedAt time.Time
	// guard ensures the membership was properly constructed
	guard guard.ConstructorGuard
}

// NewBatchMember creates a membership row with validation.
func NewBatchMember(batchID, userID kernel.UUID, joinedAt time.Time) (*BatchMember, error) {
	if err := errors.Join(
		batchID.Validate(),
		userID.Validate(),
	); err != nil {
		return nil, err
	}
	if joinedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("joinedAt")
	}

	return &BatchMember{
		batchID:  batchID,
		userID:   userID,
		joinedAt: joinedAt,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the BatchMember was properly constructed.
func (m *BatchMember) Validate() error {
	if m == nil {
		return ErrBatchMemberIsNotConstructed
	}
	return m.guard.Validate(ErrBatchMemberIsNotConstructed)
}

// BatchID returns the batch whose shared clock the worker observes.
func (m *BatchMember) BatchID() kernel.UUID {
	return m.batchID
}

// UserID returns the member worker's identifier.
func (m *BatchMember) UserID() kernel.UUID {
	return m.userID
}

// JoinedAt returns when the worker joined.
func (m *BatchMember) JoinedAt() time.Time {
	return m.joinedAt
}
