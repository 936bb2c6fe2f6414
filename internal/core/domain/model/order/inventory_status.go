package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// StockLevel is the canonical stock classification of an order. It is
// produced exclusively by the inventory oracle adapter, which normalizes
// whatever variant spelling the upstream system uses into this enum.
type StockLevel int

const (
	// UnknownStock represents an invalid or undefined stock level.
	// This value (0) helps catch uninitialized StockLevel values.
	UnknownStock StockLevel = iota

	// AllInStock means every line item is available.
	AllInStock

	// PartialStock means some line items are short.
	PartialStock

	// OutOfStock means no line item is available.
	OutOfStock
)

// getStockLevelStrings returns a map of StockLevel values to their string representations.
func getStockLevelStrings() map[StockLevel]string {
	return map[StockLevel]string{
		UnknownStock: "Unknown",
		AllInStock:   "AllInStock",
		PartialStock: "PartialStock",
		OutOfStock:   "OutOfStock",
	}
}

// getValidStockLevelStrings returns a map of only valid StockLevel values.
func getValidStockLevelStrings() map[StockLevel]string {
	//nolint:exhaustive // UnknownStock is intentionally excluded as it's invalid
	return map[StockLevel]string{
		AllInStock:   "AllInStock",
		PartialStock: "PartialStock",
		OutOfStock:   "OutOfStock",
	}
}

// StockLevelFromString parses a StockLevel from its string representation.
func StockLevelFromString(s string) (StockLevel, error) {
	for level, str := range getValidStockLevelStrings() {
		if str == s {
			return level, nil
		}
	}
	return UnknownStock, errs.NewValueIsInvalidErrorWithCause("stockLevel is invalid", fmt.Errorf("%q is not a valid stock level", s))
}

// Validate checks if the StockLevel value is valid.
func (s StockLevel) Validate() error {
	if _, ok := getValidStockLevelStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stockLevel is invalid", fmt.Errorf("%d is not a valid stock level", s))
	}
	return nil
}

// String returns the human-readable name of the stock level.
// It implements the fmt.Stringer interface and is safe to call on any value.
func (s StockLevel) String() string {
	if str, ok := getStockLevelStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ErrInventoryStatusIsNotConstructed is returned when using an improperly
// initialized InventoryStatus.
var ErrInventoryStatusIsNotConstructed = errs.NewValueIsRequiredError("InventoryStatus must be created via NewInventoryStatus")

// InventoryStatus is the read-only stock snapshot attached to an order by
// the inventory oracle. It flags availability but never blocks a stage
// transition. An order that has never been assessed carries no status.
type InventoryStatus struct {
	// level is the canonical stock classification
	level StockLevel
	// outOfStockCount is how many line items are short
	outOfStockCount int
	// lowStockItems lists the SKUs running low
	lowStockItems []string
	// guard ensures the status was properly constructed
	guard guard.ConstructorGuard
}

// NewInventoryStatus creates an InventoryStatus with validation.
//
// Parameters:
//   - level: Canonical stock classification (must be valid)
//   - outOfStockCount: Number of short line items (must be non-negative)
//   - lowStockItems: SKUs running low, may be empty
//
// Returns:
//   - InventoryStatus: The snapshot if all validations pass
//   - error: Validation error if any field is invalid
func NewInventoryStatus(level StockLevel, outOfStockCount int, lowStockItems []string) (InventoryStatus, error) {
	if err := level.Validate(); err != nil {
		return InventoryStatus{}, err
	}
	if outOfStockCount < 0 {
		return InventoryStatus{}, errs.NewValueIsInvalidErrorWithCause(
			"outOfStockCount is invalid",
			fmt.Errorf("%d is negative", outOfStockCount),
		)
	}

	items := make([]string, len(lowStockItems))
	copy(items, lowStockItems)
	return InventoryStatus{
		level:           level,
		outOfStockCount: outOfStockCount,
		lowStockItems:   items,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the InventoryStatus was properly constructed.
func (s InventoryStatus) Validate() error {
	return s.guard.Validate(ErrInventoryStatusIsNotConstructed)
}

// Level returns the canonical stock classification.
func (s InventoryStatus) Level() StockLevel {
	return s.level
}

// OutOfStockCount returns how many line items are short.
func (s InventoryStatus) OutOfStockCount() int {
	return s.outOfStockCount
}

// LowStockItems returns the SKUs running low.
// The returned slice is a copy to prevent external modification.
func (s InventoryStatus) LowStockItems() []string {
	out := make([]string, len(s.lowStockItems))
	copy(out, s.lowStockItems)
	return out
}
