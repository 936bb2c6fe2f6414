package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// BulkMoveOutcome reports the result of moving a single order within a bulk
// move. Exactly one of Transition and FailureReason is set.
type BulkMoveOutcome struct {
	OrderID       kernel.UUID
	Transition    *StageTransitionResult
	FailureReason string
}

// BulkMoveOrdersResponse lists the per-order outcomes of a bulk move, in the
// same order as the request.
type BulkMoveOrdersResponse struct {
	Outcomes []BulkMoveOutcome
}

// BulkMoveOrdersCommandHandler moves a set of orders onto one target stage.
// Orders are processed one by one, each in its own transaction, so a refusal
// on one order leaves the others unaffected.
type BulkMoveOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *stage.Graph
	effects    stageChangeEffects
	locks      *locker.KeyedMutex
}

// NewBulkMoveOrdersCommandHandler creates a handler for bulk stage moves.
func NewBulkMoveOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	graph *stage.Graph,
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	locks *locker.KeyedMutex,
	logger *slog.Logger,
) BulkMoveOrdersCommandHandler {
	return BulkMoveOrdersCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		effects:    newStageChangeEffects(inventory, publisher, logger),
		locks:      locks,
	}
}

// Handle moves every requested order onto the target stage. An unknown target
// stage fails the whole call; any per-order refusal (missing order, timer
// gate, worksheet hold) is recorded in that order's outcome and the rest of
// the set still moves.
func (h BulkMoveOrdersCommandHandler) Handle(
	ctx context.Context, cmd BulkMoveOrdersCommand,
) (BulkMoveOrdersResponse, error) {
	if err := cmd.Validate(); err != nil {
		return BulkMoveOrdersResponse{}, err
	}

	target, err := h.graph.StageByID(cmd.TargetStageID())
	if err != nil {
		return BulkMoveOrdersResponse{}, err
	}

	outcomes := make([]BulkMoveOutcome, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		outcome := BulkMoveOutcome{OrderID: orderID}

		transition, moveErr := h.moveOne(ctx, orderID, target, cmd.UserID())
		if moveErr != nil {
			outcome.FailureReason = moveErr.Error()
		} else {
			outcome.Transition = &transition
		}

		outcomes = append(outcomes, outcome)
	}

	return BulkMoveOrdersResponse{Outcomes: outcomes}, nil
}

func (h BulkMoveOrdersCommandHandler) moveOne(
	ctx context.Context, orderID kernel.UUID, target *stage.Stage, userID kernel.UUID,
) (StageTransitionResult, error) {
	key := orderLockKey(orderID)
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return StageTransitionResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return StageTransitionResult{}, err
	}

	from, err := h.graph.StageByID(aggregate.CurrentStage())
	if err != nil {
		return StageTransitionResult{}, err
	}

	session, err := findActiveSession(ctx, uow.SessionRepository(), userID)
	if err != nil {
		return StageTransitionResult{}, err
	}

	if _, err := h.effects.mover.MoveTo(h.graph, aggregate, target.ID(), userID, session); err != nil {
		return StageTransitionResult{}, err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return StageTransitionResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return StageTransitionResult{}, err
	}

	deduction := h.effects.run(ctx, aggregate, from, target, userID)

	return StageTransitionResult{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.Number(),
		FromStageID: from.ID(),
		ToStageID:   target.ID(),
		Deduction:   deduction,
	}, nil
}
