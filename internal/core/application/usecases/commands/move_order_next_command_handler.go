package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// MoveOrderNextCommandHandler advances orders one step along the pipeline.
// The transition is gated by the caller's timer coverage and, on
// worksheet-gated stages, by worksheet completion. A committed transition
// that leaves the entry stage triggers the best-effort inventory
// deduction; its outcome rides on the response and never reverses the
// move.
//
// Example:
//
//	handler := NewMoveOrderNextCommandHandler(uowFactory, graph, inventory, publisher, locks, logger)
//	cmd, _ := NewMoveOrderNextCommand(orderID, userID)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Order %s moved", result.OrderNumber)
type MoveOrderNextCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *stage.Graph
	effects    stageChangeEffects
	locks      *locker.KeyedMutex
}

// NewMoveOrderNextCommandHandler creates a handler for advancing orders.
// Requires the stage graph, the inventory gateway for deductions, the
// event publisher for stage change events and the shared keyed mutex.
func NewMoveOrderNextCommandHandler(
	uowFactory OrderUoWFactory,
	graph *stage.Graph,
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	locks *locker.KeyedMutex,
	logger *slog.Logger,
) MoveOrderNextCommandHandler {
	return MoveOrderNextCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		effects:    newStageChangeEffects(inventory, publisher, logger),
		locks:      locks,
	}
}

// Handle processes the move command.
// Loads the order, resolves the caller's active session for gating,
// applies the transition and commits, then runs the post-commit side
// effects. Returns the committed transition with any deduction outcome.
func (h MoveOrderNextCommandHandler) Handle(ctx context.Context, cmd MoveOrderNextCommand) (StageTransitionResult, error) {
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

	target, err := h.effects.mover.MoveNext(h.graph, aggregate, cmd.UserID(), session)
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
