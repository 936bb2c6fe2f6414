package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrNumberIsRequired is returned when an order is created without a number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")

	// ErrCreatedAtIsRequired is returned when an order is created with a zero timestamp.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("createdAt")

	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a production order moving through the fulfillment pipeline.
// It is the aggregate root that manages the order's stage position, its
// worksheet of line items, batch membership, and the stock snapshot attached
// by the inventory oracle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Always sits on exactly one stage of the pipeline
//   - Line items are addressed by their position on the order
//   - The inventory snapshot is informational and never blocks a transition
//   - Can only be created through NewOrder or RestoreOrder
//
// Whether a transition is allowed (next stage only, active timer, finished
// worksheet) is decided by the services coordinating orders; the aggregate
// records the outcome.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the external order number printed on paperwork
	number string

	// customerName is the customer the order is produced for (may be empty)
	customerName string

	// currentStageID is the pipeline stage the order currently sits on
	currentStageID kernel.UUID

	// batchID is the batch the order belongs to (nil if unbatched)
	batchID *kernel.UUID

	// lineItems is the order's worksheet
	lineItems []*LineItem

	// inventory is the oracle's stock snapshot (nil until first assessed)
	inventory *InventoryStatus

	// createdAt is when the order entered the system
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way to create
// a valid Order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: External order number (must be non-empty)
//   - customerName: Customer the order is for (may be empty)
//   - currentStageID: Stage the order starts on (must be valid UUID)
//   - lineItems: The order's worksheet (may be empty, items must be constructed)
//   - now: Creation timestamp (must be non-zero)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	orderID := kernel.NewUUID()
//	item, _ := NewLineItem("TEE-RED-L", "Red tee, large", 10)
//	order, err := NewOrder(orderID, "SO-1042", "Acme Corp", entryStageID, []*LineItem{item}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//
// The order starts unbatched and with no inventory snapshot.
func NewOrder(
	id kernel.UUID,
	number string,
	customerName string,
	currentStageID kernel.UUID,
	lineItems []*LineItem,
	now time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerName(customerName),
		order.setCurrentStage(currentStageID),
		order.setLineItems(lineItems),
		order.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its batch
// membership and inventory snapshot.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: External order number (must be non-empty)
//   - customerName: Customer the order is for (may be empty)
//   - currentStageID: Stage the order sits on (must be valid UUID)
//   - batchID: Batch the order belongs to (nil if unbatched)
//   - lineItems: The order's worksheet with recorded progress
//   - inventory: Stock snapshot (nil if never assessed)
//   - createdAt: Original creation timestamp (must be non-zero)
//
// Returns:
//   - *Order: The restored order if all validations pass
//   - error: Validation error if any parameter is invalid
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerName string,
	currentStageID kernel.UUID,
	batchID *kernel.UUID,
	lineItems []*LineItem,
	inventory *InventoryStatus,
	createdAt time.Time,
) (*Order, error) {
	order, err := NewOrder(id, number, customerName, currentStageID, lineItems, createdAt)
	if err != nil {
		return nil, err
	}

	if batchID != nil {
		if err := order.AssignBatch(*batchID); err != nil {
			return nil, err
		}
	}
	if inventory != nil {
		if err := order.SetInventoryStatus(*inventory); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This prevents bypassing validation by directly instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via NewOrder
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
//
// Parameters:
//   - other: The order to compare with
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the external order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerName returns the customer the order is for.
// Returns an empty string if no customer was recorded.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CurrentStage returns the ID of the stage the order currently sits on.
func (o *Order) CurrentStage() kernel.UUID {
	return o.currentStageID
}

// Batch returns the ID of the batch the order belongs to.
// Returns nil if the order is unbatched.
func (o *Order) Batch() *kernel.UUID {
	return o.batchID
}

// Inventory returns the oracle's stock snapshot.
// Returns nil if the order has never been assessed.
func (o *Order) Inventory() *InventoryStatus {
	return o.inventory
}

// CreatedAt returns when the order entered the system.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// LineItems returns the order's worksheet.
// The returned slice is a copy to prevent external modification.
func (o *Order) LineItems() []*LineItem {
	out := make([]*LineItem, len(o.lineItems))
	copy(out, o.lineItems)
	return out
}

// ItemAt returns the line item at the given position on the worksheet.
//
// Parameters:
//   - index: Position of the item (0-based)
//
// Returns:
//   - *LineItem: The item at that position
//   - error: Out-of-range error if no such position exists
func (o *Order) ItemAt(index int) (*LineItem, error) {
	if index < 0 || index >= len(o.lineItems) {
		return nil, errs.NewValueIsOutOfRangeError("itemIndex", index, 0, len(o.lineItems)-1)
	}
	return o.lineItems[index], nil
}

// WorksheetComplete reports whether every line item has been marked complete.
// An order without line items has nothing left to do and reads as complete.
func (o *Order) WorksheetComplete() bool {
	for _, item := range o.lineItems {
		if !item.IsComplete() {
			return false
		}
	}
	return true
}

// IncompleteItemCount returns how many line items are not yet marked complete.
func (o *Order) IncompleteItemCount() int {
	count := 0
	for _, item := range o.lineItems {
		if !item.IsComplete() {
			count++
		}
	}
	return count
}

// AssignStage moves the order onto the given stage.
//
// The aggregate does not know the pipeline layout; callers are expected to
// have checked that the move is legal (adjacency, timer coverage, finished
// worksheet) before calling.
//
// Parameters:
//   - stageID: The stage to move onto (must be valid UUID)
//
// Returns:
//   - nil on success
//   - error if the stage ID is invalid
func (o *Order) AssignStage(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	o.currentStageID = stageID
	return nil
}

// AssignBatch puts the order into a batch.
//
// Parameters:
//   - batchID: The batch to join (must be valid UUID)
//
// Returns:
//   - nil on success
//   - error if the batch ID is invalid
func (o *Order) AssignBatch(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	o.batchID = &batchID
	return nil
}

// ClearBatch removes the order from its batch.
// Clearing an unbatched order is a no-op.
func (o *Order) ClearBatch() {
	o.batchID = nil
}

// UpdateItemProgress records produced quantity on the line item at the given
// position. The completion flag is untouched.
//
// Parameters:
//   - index: Position of the item (0-based)
//   - qtyDone: New produced quantity (must be non-negative)
//
// Returns:
//   - nil on success
//   - error if the position does not exist or the quantity is negative
func (o *Order) UpdateItemProgress(index int, qtyDone int) error {
	item, err := o.ItemAt(index)
	if err != nil {
		return err
	}
	return item.RecordProgress(qtyDone)
}

// SetItemComplete toggles the completion flag on the line item at the given
// position. Marking complete also sets the produced quantity to the needed
// quantity; unmarking leaves it alone.
//
// Parameters:
//   - index: Position of the item (0-based)
//   - complete: The new completion flag
//
// Returns:
//   - nil on success
//   - error if the position does not exist
func (o *Order) SetItemComplete(index int, complete bool) error {
	item, err := o.ItemAt(index)
	if err != nil {
		return err
	}
	item.SetComplete(complete)
	return nil
}

// WorksheetUpdate is one row of a worksheet save: new progress and completion
// flag for the line item at ItemIndex.
type WorksheetUpdate struct {
	ItemIndex  int
	QtyDone    int
	IsComplete bool
}

// ApplyWorksheet bulk-updates line items from a saved worksheet.
//
// All rows are validated before any item is touched, so a bad row leaves the
// worksheet exactly as it was. Each row sets the item's produced quantity and
// completion flag as given; unlike SetItemComplete, a row marking an item
// complete does not rewrite its quantity.
//
// Parameters:
//   - updates: Worksheet rows to apply
//
// Returns:
//   - nil on success
//   - error if any row addresses a missing position or carries a negative quantity
func (o *Order) ApplyWorksheet(updates []WorksheetUpdate) error {
	for _, u := range updates {
		if u.ItemIndex < 0 || u.ItemIndex >= len(o.lineItems) {
			return errs.NewValueIsOutOfRangeError("itemIndex", u.ItemIndex, 0, len(o.lineItems)-1)
		}
		if u.QtyDone < 0 {
			return errs.NewValueIsInvalidErrorWithCause("qtyDone is invalid", fmt.Errorf("%d is negative", u.QtyDone))
		}
	}

	for _, u := range updates {
		item := o.lineItems[u.ItemIndex]
		if err := item.RecordProgress(u.QtyDone); err != nil {
			return err
		}
		item.isComplete = u.IsComplete
	}
	return nil
}

// SetInventoryStatus attaches the oracle's stock snapshot to the order,
// replacing any earlier snapshot.
//
// Parameters:
//   - status: The snapshot to attach (must be constructed)
//
// Returns:
//   - nil on success
//   - error if the snapshot was not properly constructed
func (o *Order) SetInventoryStatus(status InventoryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.inventory = &status
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setNumber validates and sets the external order number.
// This is a private method used only during construction.
func (o *Order) setNumber(number string) error {
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

// setCustomerName sets the customer name. Empty names are allowed.
// This is a private method used only during construction.
func (o *Order) setCustomerName(customerName string) error {
	o.customerName = customerName
	return nil
}

// setCurrentStage validates and sets the order's stage.
// This is a private method used only during construction.
func (o *Order) setCurrentStage(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}
	o.currentStageID = stageID
	return nil
}

// setLineItems validates and sets the order's worksheet.
// This is a private method used only during construction.
func (o *Order) setLineItems(lineItems []*LineItem) error {
	items := make([]*LineItem, len(lineItems))
	copy(items, lineItems)

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}

	o.lineItems = items
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
// This is a private method used only during construction.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	o.createdAt = createdAt
	return nil
}
