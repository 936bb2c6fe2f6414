package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// PauseBatchTimerCommandHandler pauses a batch's shared clock.
// Only current members may pause; the pause is observed by every member
// simultaneously because there is exactly one clock.
type PauseBatchTimerCommandHandler struct {
	uowFactory BatchTimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewPauseBatchTimerCommandHandler creates a handler for pausing shared timers.
func NewPauseBatchTimerCommandHandler(uowFactory BatchTimerUoWFactory, locks *locker.KeyedMutex) PauseBatchTimerCommandHandler {
	return PauseBatchTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the pause command.
// Requires ledger membership, then records the pause on the shared clock.
// Returns TimerRequiredError for non-members, InvalidStateError when the
// clock is not running.
func (h PauseBatchTimerCommandHandler) Handle(ctx context.Context, cmd PauseBatchTimerCommand) error {
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

	if err = aggregate.PauseTimer(time.Now()); err != nil {
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

// requireMembership checks that the user is a current member of the
// batch's shared timer. Non-members get a TimerRequiredError against the
// batch's current stage: they are not working this batch.
func requireMembership(ctx context.Context, memberRepo ports.BatchMemberRepository, aggregate *batch.Batch, userID kernel.UUID) error {
	_, err := memberRepo.Find(ctx, aggregate.ID(), userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewTimerRequiredError(userID.String(), aggregate.CurrentStage().String())
	}
	return err
}
