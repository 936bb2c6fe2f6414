package commands

import (
	"context"
	"time"

	"fulfillment/internal/pkg/locker"
)

// ResumeTimerCommandHandler resumes a user's paused session.
type ResumeTimerCommandHandler struct {
	uowFactory TimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewResumeTimerCommandHandler creates a handler for resuming sessions.
func NewResumeTimerCommandHandler(uowFactory TimerUoWFactory, locks *locker.KeyedMutex) ResumeTimerCommandHandler {
	return ResumeTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the resume command.
// Resolves the user's active session on the stage and restarts its clock.
// Returns TimerRequiredError when no active session covers the stage,
// InvalidStateError when the session is not paused.
func (h ResumeTimerCommandHandler) Handle(ctx context.Context, cmd ResumeTimerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := userLockKey(cmd.UserID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	session, err := resolveSessionOnStage(ctx, sessionRepo, cmd.UserID(), cmd.StageID())
	if err != nil {
		return err
	}

	if err = session.Resume(time.Now()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
