package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderWorksheetQueryIsNotConstructed = errors.New(
	"GetOrderWorksheetQuery must be created via NewGetOrderWorksheetQuery constructor",
)

// GetOrderWorksheetQuery retrieves the canonical worksheet read model for
// one order. Clients that applied an optimistic item update re-fetch this
// model to reconcile with what the server actually recorded.
//
// Example:
//
//	query, err := NewGetOrderWorksheetQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	worksheet, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load worksheet: %w", err)
//	}
//
//	for _, item := range worksheet.Items {
//	    fmt.Printf("%s: %d/%d\n", item.SKU, item.QtyDone, item.QtyNeeded)
//	}
type GetOrderWorksheetQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderWorksheetQuery creates a worksheet query for one order.
func NewGetOrderWorksheetQuery(orderID kernel.UUID) (GetOrderWorksheetQuery, error) {
	query := GetOrderWorksheetQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderWorksheetQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderWorksheetQueryIsNotConstructed if validation fails.
func (q GetOrderWorksheetQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderWorksheetQueryIsNotConstructed)
}

// OrderID returns the order whose worksheet is requested.
func (q GetOrderWorksheetQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderWorksheetQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// WorksheetItemResponse is one line item in display order. Index is the
// item's position in the order's canonical item list, which is what item
// update requests address; display reordering never changes it. Size is
// the token extracted from the SKU, empty when the SKU carries none.
type WorksheetItemResponse struct {
	Index      int
	SKU        string
	Name       string
	Size       string
	QtyNeeded  int
	QtyDone    int
	IsComplete bool
}

// GetOrderWorksheetQueryResponse is the canonical order and worksheet read
// model. Items are sorted by size rank for display. Inventory is nil when
// the order has never been assessed against stock.
type GetOrderWorksheetQueryResponse struct {
	OrderID           kernel.UUID
	Number            string
	CustomerName      string
	CurrentStageID    kernel.UUID
	StageName         string
	BatchID           *kernel.UUID
	WorksheetComplete bool
	Items             []WorksheetItemResponse
	Inventory         *order.InventoryStatus
	CreatedAt         time.Time
}
