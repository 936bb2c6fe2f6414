package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// DeductionLine records one SKU successfully deducted from inventory.
type DeductionLine struct {
	SKU string
	Qty int
}

// DeductionShortage records one SKU the inventory system could not fully
// deduct, with the upstream reason and the missing quantity.
type DeductionShortage struct {
	SKU      string
	Reason   string
	Shortage int
}

// DeductionResult is the outcome of a best-effort inventory deduction.
// Shortages are data for the caller's response, never grounds for rolling
// back the stage transition that triggered the deduction.
type DeductionResult struct {
	Deductions []DeductionLine
	Shortages  []DeductionShortage
}

// HasShortages reports whether any SKU could not be fully deducted.
func (r *DeductionResult) HasShortages() bool {
	return r != nil && len(r.Shortages) > 0
}

// InventoryGateway is the outbound contract to the inventory system.
// Both calls are best-effort collaborations: a failure is surfaced to the
// caller but never blocks or reverses a stage transition, and nothing here
// is retried automatically.
type InventoryGateway interface {
	// Deduct asks the inventory system to consume stock for every line
	// item on the order. Partial outcomes are normal: fulfilled SKUs come
	// back as deductions, unfulfilled ones as shortages with a reason.
	Deduct(ctx context.Context, aggregate *order.Order) (*DeductionResult, error)

	// Status asks the inventory system for current availability of the
	// given line items, normalized into the canonical status snapshot.
	Status(ctx context.Context, items []*order.LineItem) (order.InventoryStatus, error)
}
