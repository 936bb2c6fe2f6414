// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderMover: The domain service gating and applying stage transitions
//   - SizeFromSKU / SortLineItems: the SKU size grammar used to order
//     worksheet items for display
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
