package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/locker"
)

// SaveWorksheetCommandHandler records worksheet progress for an order. Outside
// the entry stage the acting user must have an active timer session on the
// order's current stage.
type SaveWorksheetCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *stage.Graph
	mover      services.OrderMover
	locks      *locker.KeyedMutex
}

// NewSaveWorksheetCommandHandler creates a handler for worksheet saves.
func NewSaveWorksheetCommandHandler(
	uowFactory OrderUoWFactory, graph *stage.Graph, locks *locker.KeyedMutex,
) SaveWorksheetCommandHandler {
	return SaveWorksheetCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		mover:      services.NewOrderMover(),
		locks:      locks,
	}
}

// Handle applies the progress rows to the order's worksheet and returns the
// resulting worksheet state. A row addressing a line item the order does not
// have fails the whole save; nothing is written.
func (h SaveWorksheetCommandHandler) Handle(
	ctx context.Context, cmd SaveWorksheetCommand,
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return WorksheetState{}, err
	}

	session, err := findActiveSession(ctx, uow.SessionRepository(), cmd.UserID())
	if err != nil {
		return WorksheetState{}, err
	}

	if err := h.mover.EnsureWorkAllowed(h.graph, aggregate, cmd.UserID(), session); err != nil {
		return WorksheetState{}, err
	}

	updates := make([]order.WorksheetUpdate, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		updates = append(updates, order.WorksheetUpdate{
			ItemIndex:  item.ItemIndex,
			QtyDone:    item.QtyDone,
			IsComplete: item.IsComplete,
		})
	}

	if err := aggregate.ApplyWorksheet(updates); err != nil {
		return WorksheetState{}, err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return WorksheetState{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return WorksheetState{}, err
	}

	return worksheetStateOf(aggregate), nil
}
