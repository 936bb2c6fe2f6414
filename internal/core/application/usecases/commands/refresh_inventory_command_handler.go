package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
)

// RefreshInventoryCommandHandler refreshes the cached stock status of every
// unshipped order from the inventory subsystem. The status is advisory: stage
// transitions never consult it, so a stale or missing status blocks nothing.
//
// Example:
//
//	handler := NewRefreshInventoryCommandHandler(uowFactory, graph, inventory)
//	cmd := NewRefreshInventoryCommand()
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("inventory refresh failed: %w", err)
//	}
//
//	// This would typically be called periodically by a scheduler
type RefreshInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	graph      *stage.Graph
	inventory  ports.InventoryGateway
}

// NewRefreshInventoryCommandHandler creates a handler for stock status
// refreshes.
func NewRefreshInventoryCommandHandler(
	uowFactory InventoryUoWFactory, graph *stage.Graph, inventory ports.InventoryGateway,
) RefreshInventoryCommandHandler {
	return RefreshInventoryCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		inventory:  inventory,
	}
}

// Handle refreshes stock status on all unshipped orders. A gateway failure on
// one order aborts the refresh; the next scheduled run picks up where this
// one left off since statuses are overwritten wholesale.
func (h *RefreshInventoryCommandHandler) Handle(ctx context.Context, cmd RefreshInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	orders, err := ordersRepo.GetAllUnshipped(ctx, h.graph.TerminalStage().ID())
	if err != nil {
		return err
	}

	for _, aggregate := range orders {
		status, statusErr := h.inventory.Status(ctx, aggregate.LineItems())
		if statusErr != nil {
			return statusErr
		}

		if err = aggregate.SetInventoryStatus(status); err != nil {
			return err
		}

		if err = ordersRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
