package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// Lock key builders for the keyed mutex shared by all command handlers.
// Individual timer operations serialize per user, shared clock and batch
// lifecycle operations per batch, and stage transitions and worksheet
// writes per order.

func userLockKey(userID kernel.UUID) string {
	return "user:" + userID.String()
}

func orderLockKey(orderID kernel.UUID) string {
	return "order:" + orderID.String()
}

func batchLockKey(batchID kernel.UUID) string {
	return "batch:" + batchID.String()
}
