package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
)

// SessionRepository defines the persistence contract for individual work
// sessions. Stopped sessions stay in the table for traceability; the
// reporting source of truth is the append-only log, not this table.
type SessionRepository interface {
	// Add persists a new session.
	Add(ctx context.Context, aggregate *timer.Session) error

	// Update persists clock transitions on an existing session.
	Update(ctx context.Context, aggregate *timer.Session) error

	// FindActiveByUser retrieves the user's single non-stopped session.
	// Returns ObjectNotFoundError when the user has no running or paused
	// session, which callers treat as "no active timer".
	//
	// Business Rules:
	//   - At most one Running or Paused session exists per user
	//   - Handlers enforce the invariant by checking here before adding
	//   - Stopped sessions are never returned
	//
	// Example:
	//   active, err := repo.FindActiveByUser(ctx, userID)
	//   if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
	//       return err
	//   }
	//   if active != nil {
	//       return errs.NewConflictError("timer")
	//   }
	FindActiveByUser(ctx context.Context, userID kernel.UUID) (*timer.Session, error)
}
