package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveWorkersQueryHandler lists a stage's live sessions joined to
// worker names. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewGetActiveWorkersQueryHandler(db)
//	query, _ := NewGetActiveWorkersQuery(stageID)
//
//	workers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active workers: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d workers on stage\n", len(workers))
type GetActiveWorkersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveWorkersQueryHandler creates a handler for stage roster queries.
// Requires a GORM database connection for query execution.
func NewGetActiveWorkersQueryHandler(db *gorm.DB) GetActiveWorkersQueryHandler {
	return GetActiveWorkersQueryHandler{db: db}
}

// Handle executes the query against the session table.
// Returns one row per Running or Paused session on the stage, ordered by
// worker name. Elapsed time is computed from the restored clock at call
// time rather than stored, so the roster never needs a background ticker.
func (h GetActiveWorkersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveWorkersQuery,
) ([]GetActiveWorkersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	workers := make([]GetActiveWorkersQueryResponse, 0)
	now := time.Now().UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.user_id,
			w.name,
			s.order_number,
			s.clock_state,
			s.clock_started_at,
			s.clock_accumulated
		FROM timer_sessions s
		JOIN workers w ON w.id = s.user_id
		WHERE s.stage_id = ? AND s.clock_state IN (?, ?)
		ORDER BY w.name
	`, query.StageID().Bytes(), int(timer.Running), int(timer.Paused)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var worker GetActiveWorkersQueryResponse
		var id uuid.UUID
		var clockState int
		var startedAt sql.NullTime
		var accumulated int64

		err = rows.Scan(
			&id,
			&worker.UserName,
			&worker.OrderNumber,
			&clockState,
			&startedAt,
			&accumulated,
		)
		if err != nil {
			return nil, err
		}

		userID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		worker.UserID = userID

		var clockStartedAt *time.Time
		if startedAt.Valid {
			startedAtValue := startedAt.Time
			clockStartedAt = &startedAtValue
		}

		clock, clockErr := timer.RestoreClock(timer.State(clockState), clockStartedAt, time.Duration(accumulated))
		if clockErr != nil {
			return nil, clockErr
		}
		worker.ElapsedMinutes = timer.WholeMinutes(clock.Elapsed(now))
		worker.IsPaused = clock.State() == timer.Paused

		workers = append(workers, worker)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}
