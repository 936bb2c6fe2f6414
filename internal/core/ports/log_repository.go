package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/timer"
)

// LogRepository defines the persistence contract for completed work records.
// The log is append-only: rows are written when a timer stops and never
// change afterwards, so the interface deliberately exposes no update or
// delete. Reports read the table directly with SQL.
type LogRepository interface {
	// Add appends a completed work record.
	Add(ctx context.Context, aggregate *timer.Log) error
}
