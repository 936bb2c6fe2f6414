package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/locker"
)

// StopBatchTimerCommandHandler stops a batch's shared clock.
// The stop writes one ledger entry per current member, each carrying the
// full shared duration: three workers on a two hour run each log two
// hours. The throughput counts land on the stopping member's entry only,
// and the membership ledger is cleared so the worker list derives empty.
type StopBatchTimerCommandHandler struct {
	uowFactory BatchTimerUoWFactory
	locks      *locker.KeyedMutex
}

// NewStopBatchTimerCommandHandler creates a handler for stopping shared timers.
func NewStopBatchTimerCommandHandler(uowFactory BatchTimerUoWFactory, locks *locker.KeyedMutex) StopBatchTimerCommandHandler {
	return StopBatchTimerCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the stop command.
// Requires ledger membership, stops the clock, appends every member's
// ledger entry and clears the membership ledger in one transaction.
// Returns TimerRequiredError for non-members, InvalidStateError when the
// clock is already stopped or never ran.
func (h StopBatchTimerCommandHandler) Handle(ctx context.Context, cmd StopBatchTimerCommand) (StopBatchTimerResponse, error) {
	if err := cmd.Validate(); err != nil {
		return StopBatchTimerResponse{}, err
	}

	key := batchLockKey(cmd.BatchID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StopBatchTimerResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	memberRepo := uow.BatchMemberRepository()

	aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return StopBatchTimerResponse{}, err
	}

	if err = requireMembership(ctx, memberRepo, aggregate, cmd.UserID()); err != nil {
		return StopBatchTimerResponse{}, err
	}

	members, err := memberRepo.GetAllForBatch(ctx, cmd.BatchID())
	if err != nil {
		return StopBatchTimerResponse{}, err
	}

	now := time.Now()

	total, err := aggregate.StopTimer(now)
	if err != nil {
		return StopBatchTimerResponse{}, err
	}
	durationMinutes := timer.WholeMinutes(total)

	logRepo := uow.LogRepository()
	batchID := cmd.BatchID()

	for _, member := range members {
		ordersProcessed, itemsProcessed := 0, 0
		if member.UserID().IsEqual(cmd.UserID()) {
			ordersProcessed = cmd.OrdersProcessed()
			itemsProcessed = cmd.ItemsProcessed()
		}

		log, logErr := timer.NewLog(
			kernel.NewUUID(),
			member.UserID(),
			aggregate.CurrentStage(),
			nil,
			&batchID,
			member.JoinedAt(),
			now,
			durationMinutes,
			ordersProcessed,
			itemsProcessed,
			false,
		)
		if logErr != nil {
			return StopBatchTimerResponse{}, logErr
		}

		if logErr = logRepo.Add(ctx, log); logErr != nil {
			return StopBatchTimerResponse{}, logErr
		}
	}

	if err = memberRepo.RemoveAllForBatch(ctx, cmd.BatchID()); err != nil {
		return StopBatchTimerResponse{}, err
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return StopBatchTimerResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StopBatchTimerResponse{}, err
	}

	return StopBatchTimerResponse{
		DurationMinutes: durationMinutes,
		MembersLogged:   len(members),
	}, nil
}
