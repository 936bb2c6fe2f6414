package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// MarkOrderShippedCommandHandler ships an order: the order advances to the
// terminal stage, inventory is deducted and a stage-change event is published.
type MarkOrderShippedCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *stage.Graph
	effects    stageChangeEffects
	locks      *locker.KeyedMutex
}

// NewMarkOrderShippedCommandHandler creates a handler for shipping orders.
func NewMarkOrderShippedCommandHandler(
	uowFactory OrderUoWFactory,
	graph *stage.Graph,
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	locks *locker.KeyedMutex,
	logger *slog.Logger,
) MarkOrderShippedCommandHandler {
	return MarkOrderShippedCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		effects:    newStageChangeEffects(inventory, publisher, logger),
		locks:      locks,
	}
}

// Handle ships the order. The transition requires a complete worksheet and,
// outside the entry stage, an active timer session on the order's current
// stage. Inventory deduction runs after the move is committed.
func (h MarkOrderShippedCommandHandler) Handle(
	ctx context.Context, cmd MarkOrderShippedCommand,
) (StageTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return StageTransitionResult{}, err
	}

	key := orderLockKey(cmd.OrderID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return StageTransitionResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return StageTransitionResult{}, err
	}

	from, err := h.graph.StageByID(aggregate.CurrentStage())
	if err != nil {
		return StageTransitionResult{}, err
	}

	session, err := findActiveSession(ctx, uow.SessionRepository(), cmd.UserID())
	if err != nil {
		return StageTransitionResult{}, err
	}

	target, err := h.effects.mover.Ship(h.graph, aggregate, cmd.UserID(), session)
	if err != nil {
		return StageTransitionResult{}, err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return StageTransitionResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return StageTransitionResult{}, err
	}

	deduction := h.effects.run(ctx, aggregate, from, target, cmd.UserID())

	return StageTransitionResult{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.Number(),
		FromStageID: from.ID(),
		ToStageID:   target.ID(),
		Deduction:   deduction,
	}, nil
}
