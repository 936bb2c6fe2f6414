package timer

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for session operations.
var (
	// ErrSessionIsNotConstructed is returned when using an improperly initialized Session.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")
	// ErrCreatedAtIsRequired is returned when a session is created without a start time.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("createdAt")
)

// Session is an individual work timer owned by exactly one user on one stage,
// optionally pinned to a specific order. It is born Running and walks the
// clock state machine until Stopped, at which point it emits exactly one
// immutable ledger entry.
//
// The one-active-session rule (a user holds at most one non-Stopped
// individual session system-wide) is enforced by the command layer, which
// serializes timer commands per user and consults the repository before
// creating a new session.
type Session struct {
	// id uniquely identifies the session
	id kernel.UUID
	// userID is the owning worker
	userID kernel.UUID
	// stageID is the pipeline stage the work is billed to
	stageID kernel.UUID
	// orderID pins the session to a specific order (nil for stage-scoped work)
	orderID *kernel.UUID
	// orderNumber is the display reference of the pinned order, may be empty
	orderNumber string
	// clock tracks elapsed time across pause/resume cycles
	clock Clock
	// createdAt is when the session was started
	createdAt time.Time
	// guard ensures the session was properly constructed
	guard guard.ConstructorGuard
}

// NewSession creates a Session that is already Running as of now. This is
// the only way to start fresh individual work tracking.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - userID: Owning worker (must be a valid UUID)
//   - stageID: Stage the work is billed to (must be a valid UUID)
//   - orderID: Optional order the work is pinned to
//   - orderNumber: Optional display reference of the pinned order
//   - now: The session's start instant
//
// Returns:
//   - *Session: A running session
//   - error: Validation error if any parameter is invalid
func NewSession(id, userID, stageID kernel.UUID, orderID *kernel.UUID, orderNumber string, now time.Time) (*Session, error) {
	session := &Session{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		session.setID(id),
		session.setUserID(userID),
		session.setStageID(stageID),
		session.setOrderID(orderID),
		session.setCreatedAt(now),
	); err != nil {
		return nil, err
	}
	session.orderNumber = orderNumber

	clock, err := NewClock().Start(now)
	if err != nil {
		return nil, err
	}
	session.clock = clock

	return session, nil
}

// RestoreSession reconstructs a Session from persistent storage, preserving
// its clock state at the time of persistence.
func RestoreSession(id, userID, stageID kernel.UUID, orderID *kernel.UUID, orderNumber string, clock Clock, createdAt time.Time) (*Session, error) {
	session := &Session{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		session.setID(id),
		session.setUserID(userID),
		session.setStageID(stageID),
		session.setOrderID(orderID),
		session.setCreatedAt(createdAt),
		session.setClock(clock),
	); err != nil {
		return nil, err
	}
	session.orderNumber = orderNumber

	return session, nil
}

// Validate checks if the Session was properly constructed.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// IsEqual compares two sessions by their unique identifiers.
func (s *Session) IsEqual(other *Session) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the session's unique identifier.
func (s *Session) ID() kernel.UUID {
	return s.id
}

// UserID returns the owning worker's identifier.
func (s *Session) UserID() kernel.UUID {
	return s.userID
}

// StageID returns the stage the work is billed to.
func (s *Session) StageID() kernel.UUID {
	return s.stageID
}

// OrderID returns the pinned order's identifier, or nil for stage-scoped work.
func (s *Session) OrderID() *kernel.UUID {
	return s.orderID
}

// OrderNumber returns the display reference of the pinned order, may be empty.
func (s *Session) OrderNumber() string {
	return s.orderNumber
}

// Clock returns the session's clock.
func (s *Session) Clock() Clock {
	return s.clock
}

// CreatedAt returns when the session was started.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// IsActive reports whether the session is Running or Paused.
func (s *Session) IsActive() bool {
	return s.clock.IsActive()
}

// Elapsed returns the total tracked duration as observed at now.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return s.clock.Elapsed(now)
}

// CoversStage reports whether this session qualifies as active work on the
// given stage, which is what stage-move gating checks.
func (s *Session) CoversStage(stageID kernel.UUID) bool {
	return s.clock.IsActive() && s.stageID.IsEqual(stageID)
}

// Pause freezes the session's clock, banking the elapsed segment.
//
// Returns:
//   - error: InvalidStateError if the session is not Running
func (s *Session) Pause(now time.Time) error {
	clock, err := s.clock.Pause(now)
	if err != nil {
		return err
	}
	s.clock = clock
	return nil
}

// Resume restarts a paused session's clock.
//
// Returns:
//   - error: InvalidStateError if the session is not Paused
func (s *Session) Resume(now time.Time) error {
	clock, err := s.clock.Resume(now)
	if err != nil {
		return err
	}
	s.clock = clock
	return nil
}

// Stop finalizes the session and emits its single ledger entry. The clock
// transition rejects a second stop, so a session can never log twice.
//
// Parameters:
//   - now: The stop instant
//   - ordersProcessed: Orders completed during the session
//   - itemsProcessed: Items completed during the session
//   - isManual: Whether the entry was corrected or entered by hand
//
// Returns:
//   - *Log: The immutable ledger entry holding the final duration
//   - error: InvalidStateError if the session is neither Running nor Paused
func (s *Session) Stop(now time.Time, ordersProcessed, itemsProcessed int, isManual bool) (*Log, error) {
	clock, err := s.clock.Stop(now)
	if err != nil {
		return nil, err
	}
	s.clock = clock

	return NewLog(
		kernel.NewUUID(),
		s.userID,
		s.stageID,
		s.orderID,
		nil,
		s.createdAt,
		now,
		WholeMinutes(clock.Accumulated()),
		ordersProcessed,
		itemsProcessed,
		isManual,
	)
}

// setID sets the session's unique identifier with validation.
// This is an internal setter used during construction.
func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// setUserID sets the owning worker with validation.
// This is an internal setter used during construction.
func (s *Session) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	s.userID = userID
	return nil
}

// setStageID sets the billed stage with validation.
// This is an internal setter used during construction.
func (s *Session) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}
	s.stageID = stageID
	return nil
}

// setOrderID sets the optional pinned order with validation.
// This is an internal setter used during construction.
func (s *Session) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	s.orderID = &id
	return nil
}

// setCreatedAt sets the session start time with validation.
// This is an internal setter used during construction.
func (s *Session) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	s.createdAt = createdAt
	return nil
}

// setClock sets the session clock with validation.
// This is an internal setter used during restoration.
func (s *Session) setClock(clock Clock) error {
	if err := clock.Validate(); err != nil {
		return err
	}
	s.clock = clock
	return nil
}
