package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// AdvanceBatchResponse reports the outcome of advancing a batch: the stage the
// batch landed on plus a per-member outcome list in member order.
type AdvanceBatchResponse struct {
	BatchID   kernel.UUID
	ToStageID kernel.UUID
	Outcomes  []BulkMoveOutcome
}

// AdvanceBatchCommandHandler moves a batch and its member orders onto a target
// stage. Member moves that fail (worksheet hold, already shipped) are recorded
// in the outcome list; the batch itself still advances.
type AdvanceBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	graph      *stage.Graph
	effects    stageChangeEffects
	locks      *locker.KeyedMutex
}

// NewAdvanceBatchCommandHandler creates a handler for batch advances.
func NewAdvanceBatchCommandHandler(
	uowFactory BatchUoWFactory,
	graph *stage.Graph,
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	locks *locker.KeyedMutex,
	logger *slog.Logger,
) AdvanceBatchCommandHandler {
	return AdvanceBatchCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		effects:    newStageChangeEffects(inventory, publisher, logger),
		locks:      locks,
	}
}

// Handle advances the batch. Outside the entry stage the acting user must be
// on the batch's shared timer with the clock running or paused; member orders
// are moved without individual sessions since the shared clock covers them.
func (h AdvanceBatchCommandHandler) Handle(
	ctx context.Context, cmd AdvanceBatchCommand,
) (AdvanceBatchResponse, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceBatchResponse{}, err
	}

	target, err := h.graph.StageByID(cmd.TargetStageID())
	if err != nil {
		return AdvanceBatchResponse{}, err
	}

	batchKey := batchLockKey(cmd.BatchID())
	h.locks.Lock(batchKey)
	defer h.locks.Unlock(batchKey)

	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return AdvanceBatchResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return AdvanceBatchResponse{}, err
	}

	atEntry := h.graph.EntryStage().ID().IsEqual(aggregate.CurrentStage())
	if !atEntry {
		if err := requireMembership(ctx, uow.BatchMemberRepository(), aggregate, cmd.UserID()); err != nil {
			return AdvanceBatchResponse{}, err
		}

		if !aggregate.Clock().IsActive() {
			return AdvanceBatchResponse{}, errs.NewTimerRequiredError(
				cmd.UserID().String(), aggregate.CurrentStage().String())
		}
	}

	orderKeys := make([]string, 0, len(aggregate.OrderIDs()))
	for _, orderID := range aggregate.OrderIDs() {
		orderKeys = append(orderKeys, orderLockKey(orderID))
	}

	h.locks.LockAll(orderKeys...)
	defer h.locks.UnlockAll(orderKeys...)

	type movedMember struct {
		aggregate *order.Order
		from      *stage.Stage
	}

	outcomes := make([]BulkMoveOutcome, 0, len(aggregate.OrderIDs()))
	moved := make([]movedMember, 0, len(aggregate.OrderIDs()))

	for _, orderID := range aggregate.OrderIDs() {
		outcome := BulkMoveOutcome{OrderID: orderID}

		member, from, moveErr := h.moveMember(ctx, uow, orderID, target)
		if moveErr != nil {
			outcome.FailureReason = moveErr.Error()
		} else {
			outcome.Transition = &StageTransitionResult{
				OrderID:     member.ID(),
				OrderNumber: member.Number(),
				FromStageID: from.ID(),
				ToStageID:   target.ID(),
			}
			moved = append(moved, movedMember{aggregate: member, from: from})
		}

		outcomes = append(outcomes, outcome)
	}

	if err := aggregate.AssignStage(target.ID()); err != nil {
		return AdvanceBatchResponse{}, err
	}

	if err := uow.BatchRepository().Update(ctx, aggregate); err != nil {
		return AdvanceBatchResponse{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return AdvanceBatchResponse{}, err
	}

	for i := range moved {
		deduction := h.effects.run(ctx, moved[i].aggregate, moved[i].from, target, cmd.UserID())

		for j := range outcomes {
			if outcomes[j].Transition != nil && outcomes[j].OrderID.IsEqual(moved[i].aggregate.ID()) {
				outcomes[j].Transition.Deduction = deduction
			}
		}
	}

	return AdvanceBatchResponse{
		BatchID:   aggregate.ID(),
		ToStageID: target.ID(),
		Outcomes:  outcomes,
	}, nil
}

func (h AdvanceBatchCommandHandler) moveMember(
	ctx context.Context, uow BatchUoW, orderID kernel.UUID, target *stage.Stage,
) (*order.Order, *stage.Stage, error) {
	member, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	from, err := h.graph.StageByID(member.CurrentStage())
	if err != nil {
		return nil, nil, err
	}

	if err := h.effects.mover.MoveForBatch(h.graph, member, target); err != nil {
		return nil, nil, err
	}

	if err := uow.OrderRepository().Update(ctx, member); err != nil {
		return nil, nil, err
	}

	return member, from, nil
}
