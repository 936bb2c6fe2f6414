package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderStageChanged is the integration event emitted after a committed
// stage transition, whether from a single move, a bulk move, shipping or
// a batch advance.
type OrderStageChanged struct {
	OrderID     kernel.UUID
	OrderNumber string
	FromStageID kernel.UUID
	ToStageID   kernel.UUID
	UserID      kernel.UUID
	OccurredAt  time.Time
}

// EventPublisher is the outbound contract for integration events.
// Publishing is fire-and-forget after the transaction commits: a publish
// failure is logged by the caller and never fails the command.
type EventPublisher interface {
	// PublishOrderStageChanged emits one stage change event.
	PublishOrderStageChanged(ctx context.Context, event OrderStageChanged) error
}
