package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/locker"
)

// MarkItemCompleteCommandHandler toggles the completion flag of one line item
// on an order's worksheet.
type MarkItemCompleteCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *stage.Graph
	mover      services.OrderMover
	locks      *locker.KeyedMutex
}

// NewMarkItemCompleteCommandHandler creates a handler for line item
// completion toggles.
func NewMarkItemCompleteCommandHandler(
	uowFactory OrderUoWFactory, graph *stage.Graph, locks *locker.KeyedMutex,
) MarkItemCompleteCommandHandler {
	return MarkItemCompleteCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		mover:      services.NewOrderMover(),
		locks:      locks,
	}
}

// Handle sets the line item's completion flag and returns the resulting
// worksheet state. Marking an item complete also snaps its done quantity to
// the needed quantity.
func (h MarkItemCompleteCommandHandler) Handle(
	ctx context.Context, cmd MarkItemCompleteCommand,
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

	if err := aggregate.SetItemComplete(cmd.ItemIndex(), cmd.IsComplete()); err != nil {
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
