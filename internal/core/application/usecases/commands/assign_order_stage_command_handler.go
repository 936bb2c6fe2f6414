package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// AssignOrderStageCommandHandler re-routes orders onto arbitrary stages.
// Jumps may go backwards or skip ahead; the same gating as a regular move
// applies, and a jump that leaves the entry stage or lands on the
// terminal stage triggers the inventory deduction.
type AssignOrderStageCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *stage.Graph
	effects    stageChangeEffects
	locks      *locker.KeyedMutex
}

// NewAssignOrderStageCommandHandler creates a handler for re-routing orders.
func NewAssignOrderStageCommandHandler(
	uowFactory OrderUoWFactory,
	graph *stage.Graph,
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	locks *locker.KeyedMutex,
	logger *slog.Logger,
) AssignOrderStageCommandHandler {
	return AssignOrderStageCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		effects:    newStageChangeEffects(inventory, publisher, logger),
		locks:      locks,
	}
}

// Handle processes the re-route command.
// Identical to a regular move except the target is caller-chosen.
// Returns the committed transition with any deduction outcome.
func (h AssignOrderStageCommandHandler) Handle(ctx context.Context, cmd AssignOrderStageCommand) (StageTransitionResult, error) {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
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

	target, err := h.effects.mover.MoveTo(h.graph, aggregate, cmd.TargetStageID(), cmd.UserID(), session)
	if err != nil {
		return StageTransitionResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return StageTransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
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
