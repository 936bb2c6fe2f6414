package commands

import (
	"context"
	"time"

	"fulfillment/internal/pkg/locker"
)

// ResumeBatchTimerCommandHandler resumes a batch's paused shared clock.
type ResumeBatchTimerCommandHandler struct {
	uowFactory BatchTimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewResumeBatchTimerCommandHandler creates a handler for resuming shared timers.
func NewResumeBatchTimerCommandHandler(uowFactory BatchTimerUoWFactory, locks *locker.KeyedMutex) ResumeBatchTimerCommandHandler {
	return ResumeBatchTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the resume command.
// Requires ledger membership, then restarts the shared clock with the
// banked minutes untouched. Returns TimerRequiredError for non-members,
// InvalidStateError when the clock is not paused.
func (h ResumeBatchTimerCommandHandler) Handle(ctx context.Context, cmd ResumeBatchTimerCommand) error {
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

	batchRepo := uow.BatchRepository()

	aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = requireMembership(ctx, uow.BatchMemberRepository(), aggregate, cmd.UserID()); err != nil {
		return err
	}

	if err = aggregate.ResumeTimer(time.Now()); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
