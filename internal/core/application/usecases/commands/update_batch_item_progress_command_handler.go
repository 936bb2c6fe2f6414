package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// UpdateBatchItemProgressCommandHandler records line item progress for a
// member order of a batch. The caller applies progress optimistically on
// screen; the returned state is canonical and wins on any disagreement.
type UpdateBatchItemProgressCommandHandler struct {
	uowFactory BatchUoWFactory
	locks      *locker.KeyedMutex
}

// NewUpdateBatchItemProgressCommandHandler creates a handler for batch line
// item progress updates.
func NewUpdateBatchItemProgressCommandHandler(
	uowFactory BatchUoWFactory, locks *locker.KeyedMutex,
) UpdateBatchItemProgressCommandHandler {
	return UpdateBatchItemProgressCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle records the done quantity on the line item and returns the order's
// worksheet state. The acting user must be on the batch's shared timer, and
// the order must belong to the batch.
func (h UpdateBatchItemProgressCommandHandler) Handle(
	ctx context.Context, cmd UpdateBatchItemProgressCommand,
) (WorksheetState, error) {
	if err := cmd.Validate(); err != nil {
		return WorksheetState{}, err
	}

	key := orderLockKey(cmd.OrderID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return WorksheetState{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return WorksheetState{}, err
	}

	if err := requireMembership(ctx, uow.BatchMemberRepository(), aggregate, cmd.UserID()); err != nil {
		return WorksheetState{}, err
	}

	if !aggregate.ContainsOrder(cmd.OrderID()) {
		return WorksheetState{}, errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	member, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return WorksheetState{}, err
	}

	if err := member.UpdateItemProgress(cmd.ItemIndex(), cmd.Qty()); err != nil {
		return WorksheetState{}, err
	}

	if err := uow.OrderRepository().Update(ctx, member); err != nil {
		return WorksheetState{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return WorksheetState{}, err
	}

	return worksheetStateOf(member), nil
}
