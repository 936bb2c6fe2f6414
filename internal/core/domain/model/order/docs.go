// Package order provides domain entities and business logic for production
// orders in the fulfillment system. It implements the Order aggregate root
// with its worksheet of line items and the inventory snapshot attached by
// the stock oracle.
//
// The package includes:
//   - Order: The aggregate root that manages identity, stage position, batch
//     membership, and the worksheet
//   - LineItem: One SKU position on the worksheet, addressed by index
//   - InventoryStatus and StockLevel: The oracle's read-only stock snapshot
//
// Key business rules:
//   - Orders must have a valid unique identifier and a non-empty number
//   - An order always sits on exactly one pipeline stage
//   - The completion flag on a line item, not its quantities, gates stage
//     transitions; produced quantity is capped at twice the needed quantity
//   - The inventory snapshot flags availability but never blocks a move
//
// Whether a particular stage move is legal is decided by the coordinating
// services, which know the pipeline layout and the timer ledger; the
// aggregate only records outcomes.
package order
