package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// JoinBatchTimerCommandHandler adds workers to a batch's shared timer.
// All shared clock operations on one batch serialize on the per-batch
// lock, so two workers joining in the same instant cannot both observe an
// idle clock and start it twice.
//
// Example:
//
//	handler := NewJoinBatchTimerCommandHandler(uowFactory, locks)
//	cmd, _ := NewJoinBatchTimerCommand(batchID, userID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to join batch timer: %w", err)
//	}
type JoinBatchTimerCommandHandler struct {
	uowFactory BatchTimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewJoinBatchTimerCommandHandler creates a handler for joining shared timers.
func NewJoinBatchTimerCommandHandler(uowFactory BatchTimerUoWFactory, locks *locker.KeyedMutex) JoinBatchTimerCommandHandler {
	return JoinBatchTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the join command.
// Starts the clock only when it is idle, records membership, and is a
// full no-op for a worker who already joined. Joining a stopped clock is
// an InvalidStateError; the batch's run is over.
func (h JoinBatchTimerCommandHandler) Handle(ctx context.Context, cmd JoinBatchTimerCommand) error {
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
	memberRepo := uow.BatchMemberRepository()

	aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	existing, err := memberRepo.Find(ctx, cmd.BatchID(), cmd.UserID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	started, err := aggregate.StartTimerIfIdle(time.Now())
	if err != nil {
		return err
	}

	member, err := timer.NewBatchMember(cmd.BatchID(), cmd.UserID(), time.Now())
	if err != nil {
		return err
	}

	if err = memberRepo.Add(ctx, member); err != nil {
		return err
	}

	if started {
		if err = batchRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
