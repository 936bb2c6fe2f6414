package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// StageTransitionResult describes one committed stage transition. The
// deduction field is present only when the transition triggered an
// inventory deduction and the inventory system answered; shortages inside
// it are response data, never grounds for rolling the transition back.
type StageTransitionResult struct {
	OrderID     kernel.UUID
	OrderNumber string
	FromStageID kernel.UUID
	ToStageID   kernel.UUID
	Deduction   *ports.DeductionResult
}

// WorksheetItemState is the canonical state of one line item after a
// worksheet write. Clients applying optimistic updates reconcile against
// these rows.
type WorksheetItemState struct {
	Index      int
	SKU        string
	Name       string
	QtyNeeded  int
	QtyDone    int
	IsComplete bool
}

// WorksheetState is the canonical worksheet of an order after a write.
type WorksheetState struct {
	OrderID           kernel.UUID
	Items             []WorksheetItemState
	WorksheetComplete bool
}

// worksheetStateOf snapshots the order's worksheet for a response.
func worksheetStateOf(o *order.Order) WorksheetState {
	lineItems := o.LineItems()
	items := make([]WorksheetItemState, 0, len(lineItems))
	for i, item := range lineItems {
		items = append(items, WorksheetItemState{
			Index:      i,
			SKU:        item.SKU(),
			Name:       item.Name(),
			QtyNeeded:  item.QtyNeeded(),
			QtyDone:    item.QtyDone(),
			IsComplete: item.IsComplete(),
		})
	}

	return WorksheetState{
		OrderID:           o.ID(),
		Items:             items,
		WorksheetComplete: o.WorksheetComplete(),
	}
}
