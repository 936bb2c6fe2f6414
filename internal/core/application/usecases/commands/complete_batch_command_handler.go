package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// CompleteBatchCommandHandler closes out a batch that has reached the end of
// the pipeline. Completing never touches the shared timer: a still-running
// clock must be stopped explicitly so the worked minutes get logged.
type CompleteBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	graph      *stage.Graph
	locks      *locker.KeyedMutex
}

// NewCompleteBatchCommandHandler creates a handler for batch completion.
func NewCompleteBatchCommandHandler(
	uowFactory BatchUoWFactory, graph *stage.Graph, locks *locker.KeyedMutex,
) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		locks:      locks,
	}
}

// Handle marks the batch completed. The batch must sit on the final stage and
// every member order's worksheet must be complete.
func (h CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) error {
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

	aggregate, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	atTerminal, err := h.graph.IsTerminal(aggregate.CurrentStage())
	if err != nil {
		return err
	}

	if !atTerminal {
		return errs.NewInvalidStateErrorWithCause("batch",
			fmt.Errorf("batch %s has not reached the final stage", aggregate.ID().String()))
	}

	for _, orderID := range aggregate.OrderIDs() {
		member, err := uow.OrderRepository().Get(ctx, orderID)
		if err != nil {
			return err
		}

		if !member.WorksheetComplete() {
			return errs.NewWorksheetIncompleteError(member.ID().String(), member.IncompleteItemCount())
		}
	}

	if err := aggregate.MarkCompleted(); err != nil {
		return err
	}

	if err := uow.BatchRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
