package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// PauseTimerCommandHandler pauses a user's running session.
// Pausing banks the time elapsed since the last start or resume into the
// accumulated total; a paused session keeps covering its stage for gating.
type PauseTimerCommandHandler struct {
	uowFactory TimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewPauseTimerCommandHandler creates a handler for pausing sessions.
func NewPauseTimerCommandHandler(uowFactory TimerUoWFactory, locks *locker.KeyedMutex) PauseTimerCommandHandler {
	return PauseTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the pause command.
// Resolves the user's active session, checks it covers the requested
// stage, and records the pause. Returns TimerRequiredError when the user
// has no active session on the stage, InvalidStateError when the session
// is not running.
func (h PauseTimerCommandHandler) Handle(ctx context.Context, cmd PauseTimerCommand) error {
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

	if err = session.Pause(time.Now()); err != nil {
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

// resolveSessionOnStage finds the user's single active session and checks
// it belongs to the requested stage. A session on another stage does not
// qualify: the caller is effectively not working here.
func resolveSessionOnStage(
	ctx context.Context,
	repo ports.SessionRepository,
	userID, stageID kernel.UUID,
) (*timer.Session, error) {
	session, err := repo.FindActiveByUser(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewTimerRequiredError(userID.String(), stageID.String())
	}
	if err != nil {
		return nil, err
	}

	if !session.StageID().IsEqual(stageID) {
		return nil, errs.NewTimerRequiredError(userID.String(), stageID.String())
	}

	return session, nil
}
