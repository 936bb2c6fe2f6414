// Package ports defines the contracts between the core and infrastructure:
// repository interfaces for the persisted aggregates, outbound gateways for
// the inventory and production collaborators, and the event publisher.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their complete worksheet and inventory snapshot.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its worksheet, batch assignment and
	// latest inventory snapshot.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInBatch retrieves every order assigned to the given batch.
	// Used by batch advancement and completion to apply per-member changes.
	GetAllInBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error)

	// GetAllUnshipped retrieves every order not yet on the terminal stage.
	// The caller supplies the terminal stage identifier from the stage graph;
	// the repository itself has no notion of pipeline shape.
	//
	// Business Rules:
	//   - Orders on any working stage: included
	//   - Orders on the terminal stage: excluded (shipped, inventory settled)
	//
	// Example:
	//   open, err := repo.GetAllUnshipped(ctx, graph.TerminalStage().ID())
	//   if err != nil {
	//       return fmt.Errorf("failed to get open orders: %w", err)
	//   }
	//   for _, o := range open {
	//       refreshInventory(ctx, o)
	//   }
	GetAllUnshipped(ctx context.Context, terminalStageID kernel.UUID) ([]*order.Order, error)
}
