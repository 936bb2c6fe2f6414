package commands

import (
	"context"
	"time"

	"fulfillment/internal/pkg/locker"
)

// StopTimerCommandHandler finalizes individual sessions.
// A stop banks the remaining elapsed time, writes the session's single
// immutable ledger entry and retires the session. The clock transition
// rejects sessions that are already stopped, so double stops can never
// produce a second ledger entry.
type StopTimerCommandHandler struct {
	uowFactory TimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewStopTimerCommandHandler creates a handler for stopping sessions.
func NewStopTimerCommandHandler(uowFactory TimerUoWFactory, locks *locker.KeyedMutex) StopTimerCommandHandler {
	return StopTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the stop command.
// Resolves the user's active session on the stage, stops it, persists the
// final session state and appends the ledger entry, all in one
// transaction. Returns the logged duration in whole minutes.
func (h StopTimerCommandHandler) Handle(ctx context.Context, cmd StopTimerCommand) (StopTimerResponse, error) {
	if err := cmd.Validate(); err != nil {
		return StopTimerResponse{}, err
	}

	key := userLockKey(cmd.UserID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StopTimerResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	session, err := resolveSessionOnStage(ctx, sessionRepo, cmd.UserID(), cmd.StageID())
	if err != nil {
		return StopTimerResponse{}, err
	}

	log, err := session.Stop(time.Now(), cmd.OrdersProcessed(), cmd.ItemsProcessed(), cmd.IsManual())
	if err != nil {
		return StopTimerResponse{}, err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return StopTimerResponse{}, err
	}

	if err = uow.LogRepository().Add(ctx, log); err != nil {
		return StopTimerResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StopTimerResponse{}, err
	}

	return StopTimerResponse{DurationMinutes: log.DurationMinutes()}, nil
}
