package commands

import (
	"context"

	"fulfillment/internal/pkg/locker"
)

// LeaveBatchTimerCommandHandler removes workers from a batch's shared
// timer without touching the clock.
type LeaveBatchTimerCommandHandler struct {
	uowFactory BatchTimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewLeaveBatchTimerCommandHandler creates a handler for leaving shared timers.
func NewLeaveBatchTimerCommandHandler(uowFactory BatchTimerUoWFactory, locks *locker.KeyedMutex) LeaveBatchTimerCommandHandler {
	return LeaveBatchTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the leave command.
// Verifies the batch exists and deletes the membership row. Leaving a
// batch the worker never joined is a no-op.
func (h LeaveBatchTimerCommandHandler) Handle(ctx context.Context, cmd LeaveBatchTimerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := batchLockKey(cmd.BatchID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.BatchRepository().Get(ctx, cmd.BatchID()); err != nil {
		return err
	}

	if err := uow.BatchMemberRepository().Remove(ctx, cmd.BatchID(), cmd.UserID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
