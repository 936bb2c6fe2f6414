package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrSKUIsRequired is returned when a line item is created without a SKU.
	ErrSKUIsRequired = errs.NewValueIsRequiredError("sku")

	// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
	// created through NewLineItem or RestoreLineItem.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is a single SKU position on an order's worksheet. Items are
// addressed by their position on the order, so a LineItem carries no
// identifier of its own.
//
// LineItem follows these invariants:
//   - Must have a non-empty SKU
//   - Needed quantity must be positive
//   - Done quantity never goes below zero and is capped at twice the
//     needed quantity (overruns happen on the floor, runaway counts do not)
//   - The completion flag, not the quantities, decides whether the item
//     gates a stage transition
type LineItem struct {
	// sku is the stock keeping unit being produced
	sku string

	// name is the human-readable description of the item
	name string

	// qtyNeeded is how many units the order requires
	qtyNeeded int

	// qtyDone is how many units have been produced so far
	qtyDone int

	// isComplete marks the item as finished regardless of quantities
	isComplete bool

	// isConstructed ensures the item was created via a constructor
	isConstructed bool
}

// NewLineItem creates a fresh LineItem with nothing produced yet.
//
// Parameters:
//   - sku: Stock keeping unit (must be non-empty)
//   - name: Human-readable description (may be empty)
//   - qtyNeeded: Required quantity (must be positive)
//
// Returns:
//   - *LineItem: The created item if all validations pass
//   - error: Validation error if any parameter is invalid
func NewLineItem(sku string, name string, qtyNeeded int) (*LineItem, error) {
	item := &LineItem{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setSKU(sku),
		item.setName(name),
		item.setQtyNeeded(qtyNeeded),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a LineItem from persistence with its
// recorded progress and completion flag.
//
// Parameters:
//   - sku: Stock keeping unit (must be non-empty)
//   - name: Human-readable description (may be empty)
//   - qtyNeeded: Required quantity (must be positive)
//   - qtyDone: Produced quantity (must be non-negative)
//   - isComplete: Whether the item was marked finished
//
// Returns:
//   - *LineItem: The restored item if all validations pass
//   - error: Validation error if any parameter is invalid
func RestoreLineItem(sku string, name string, qtyNeeded int, qtyDone int, isComplete bool) (*LineItem, error) {
	item, err := NewLineItem(sku, name, qtyNeeded)
	if err != nil {
		return nil, err
	}

	if err := item.setQtyDone(qtyDone); err != nil {
		return nil, err
	}
	item.isComplete = isComplete

	return item, nil
}

// Validate ensures the LineItem was properly constructed.
func (i *LineItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}

	return nil
}

// SKU returns the item's stock keeping unit.
func (i *LineItem) SKU() string {
	return i.sku
}

// Name returns the item's human-readable description.
func (i *LineItem) Name() string {
	return i.name
}

// QtyNeeded returns the required quantity.
func (i *LineItem) QtyNeeded() int {
	return i.qtyNeeded
}

// QtyDone returns the produced quantity.
func (i *LineItem) QtyDone() int {
	return i.qtyDone
}

// IsComplete reports whether the item was marked finished. Only this flag
// gates stage transitions; quantities are informational.
func (i *LineItem) IsComplete() bool {
	return i.isComplete
}

// RecordProgress sets the produced quantity to qtyDone.
//
// Negative values are rejected. Values beyond twice the needed quantity are
// clamped rather than rejected, so workers can log real overruns while a
// mistyped count cannot blow the number up. Recording progress never touches
// the completion flag.
//
// Parameters:
//   - qtyDone: New produced quantity (must be non-negative)
//
// Returns:
//   - nil on success
//   - error if qtyDone is negative
func (i *LineItem) RecordProgress(qtyDone int) error {
	if qtyDone < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyDone is invalid", fmt.Errorf("%d is negative", qtyDone))
	}

	if max := i.qtyNeeded * 2; qtyDone > max {
		qtyDone = max
	}
	i.qtyDone = qtyDone
	return nil
}

// SetComplete toggles the completion flag.
//
// Marking an item complete also sets its produced quantity to the needed
// quantity, so a completed item never reads as short. Unmarking leaves the
// produced quantity alone to preserve the progress already recorded.
func (i *LineItem) SetComplete(complete bool) {
	if complete {
		i.isComplete = true
		i.qtyDone = i.qtyNeeded
		return
	}
	i.isComplete = false
}

// setSKU validates and sets the item's SKU.
// This is a private method used only during construction.
func (i *LineItem) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}
	i.sku = sku
	return nil
}

// setName sets the item's description. Empty descriptions are allowed.
// This is a private method used only during construction.
func (i *LineItem) setName(name string) error {
	i.name = name
	return nil
}

// setQtyNeeded validates and sets the required quantity.
// This is a private method used only during construction.
func (i *LineItem) setQtyNeeded(qtyNeeded int) error {
	if qtyNeeded <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyNeeded is invalid", fmt.Errorf("%d is not greater than 0", qtyNeeded))
	}
	i.qtyNeeded = qtyNeeded
	return nil
}

// setQtyDone validates and sets the produced quantity during restore.
// This is a private method used only during construction.
func (i *LineItem) setQtyDone(qtyDone int) error {
	if qtyDone < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyDone is invalid", fmt.Errorf("%d is negative", qtyDone))
	}
	i.qtyDone = qtyDone
	return nil
}
