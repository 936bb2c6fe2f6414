package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// CreateBatchCommandHandler groups orders into a batch. The batch starts at
// the earliest stage any member currently occupies, and every member order
// gets the batch stamped onto it.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	graph      *stage.Graph
	locks      *locker.KeyedMutex
}

// NewCreateBatchCommandHandler creates a handler for batch creation.
func NewCreateBatchCommandHandler(
	uowFactory BatchUoWFactory, graph *stage.Graph, locks *locker.KeyedMutex,
) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		locks:      locks,
	}
}

// Handle creates the batch. Every requested order must exist and must not
// already belong to another batch; a violation fails the whole call and
// nothing is written.
func (h CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := make([]string, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		keys = append(keys, orderLockKey(orderID))
	}

	h.locks.LockAll(keys...)
	defer h.locks.UnlockAll(keys...)

	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	members := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		member, err := uow.OrderRepository().Get(ctx, orderID)
		if err != nil {
			return err
		}

		if existing := member.Batch(); existing != nil {
			return errs.NewConflictErrorWithCause("order",
				fmt.Errorf("order %s already belongs to batch %s", member.Number(), existing.String()))
		}

		members = append(members, member)
	}

	startStage, err := h.earliestStage(members)
	if err != nil {
		return err
	}

	aggregate, err := batch.NewBatch(cmd.BatchID(), cmd.OrderIDs(), startStage, time.Now())
	if err != nil {
		return err
	}

	for _, member := range members {
		if err := member.AssignBatch(aggregate.ID()); err != nil {
			return err
		}

		if err := uow.OrderRepository().Update(ctx, member); err != nil {
			return err
		}
	}

	if err := uow.BatchRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// earliestStage picks the stage with the smallest pipeline position among the
// members' current stages.
func (h CreateBatchCommandHandler) earliestStage(members []*order.Order) (kernel.UUID, error) {
	best := members[0].CurrentStage()

	bestIndex, err := h.graph.IndexOf(best)
	if err != nil {
		return best, err
	}

	for _, member := range members[1:] {
		index, err := h.graph.IndexOf(member.CurrentStage())
		if err != nil {
			return best, err
		}

		if index < bestIndex {
			best = member.CurrentStage()
			bestIndex = index
		}
	}

	return best, nil
}
