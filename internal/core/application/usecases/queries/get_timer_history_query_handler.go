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

// GetTimerHistoryQueryHandler assembles a worker's timer history from the
// log, the stage config, and the live session table. Uses direct SQL
// queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetTimerHistoryQueryHandler(db)
//	query, _ := NewGetTimerHistoryQuery(userID, PeriodDay)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to load timer history: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d sessions today\n", history.Totals.SessionCount)
type GetTimerHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetTimerHistoryQueryHandler creates a handler for timer history queries.
// Requires a GORM database connection for query execution.
func NewGetTimerHistoryQueryHandler(db *gorm.DB) GetTimerHistoryQueryHandler {
	return GetTimerHistoryQueryHandler{db: db}
}

// Handle executes the history reads for one worker and window.
// Totals and session lines come only from finalized log entries; the live
// session, when present, is reported separately with derived elapsed time
// and never counted into the totals.
func (h GetTimerHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTimerHistoryQuery,
) (GetTimerHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTimerHistoryQueryResponse{}, err
	}

	userID := query.UserID().Bytes()
	since := query.Period().Start(time.Now())

	totals, err := h.loadTotals(ctx, userID, since)
	if err != nil {
		return GetTimerHistoryQueryResponse{}, err
	}

	sessions, err := h.loadSessions(ctx, userID, since)
	if err != nil {
		return GetTimerHistoryQueryResponse{}, err
	}

	byStage, err := h.loadStageGroups(ctx, userID, since)
	if err != nil {
		return GetTimerHistoryQueryResponse{}, err
	}

	activeTimer, err := h.loadActiveTimer(ctx, userID)
	if err != nil {
		return GetTimerHistoryQueryResponse{}, err
	}

	return GetTimerHistoryQueryResponse{
		Totals:      totals,
		Sessions:    sessions,
		ActiveTimer: activeTimer,
		ByStage:     byStage,
		PeriodLabel: query.Period().Label(),
	}, nil
}

func (h GetTimerHistoryQueryHandler) loadTotals(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (TimerHistoryTotals, error) {
	var totals TimerHistoryTotals

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS session_count,
			COALESCE(SUM(l.duration_minutes), 0) AS total_minutes,
			COUNT(*) FILTER (WHERE l.orders_processed > 0) AS total_orders,
			COALESCE(SUM(l.items_processed), 0) AS total_items
		FROM timer_logs l
		WHERE l.user_id = ? AND l.completed_at >= ?
	`, userID, since).Rows()
	if err != nil {
		return TimerHistoryTotals{}, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.Scan(
			&totals.SessionCount,
			&totals.TotalMinutes,
			&totals.TotalOrders,
			&totals.TotalItems,
		)
		if err != nil {
			return TimerHistoryTotals{}, err
		}
	}

	if err = rows.Err(); err != nil {
		return TimerHistoryTotals{}, err
	}

	totals.TotalHours = float64(totals.TotalMinutes) / 60.0
	return totals, nil
}

func (h GetTimerHistoryQueryHandler) loadSessions(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]TimerHistorySession, error) {
	sessions := make([]TimerHistorySession, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.stage_id,
			st.name,
			o.number,
			l.started_at,
			l.completed_at,
			l.duration_minutes,
			l.orders_processed,
			l.items_processed,
			l.is_manual
		FROM timer_logs l
		JOIN stages st ON st.id = l.stage_id
		LEFT JOIN orders o ON o.id = l.order_id
		WHERE l.user_id = ? AND l.completed_at >= ?
		ORDER BY l.completed_at DESC
	`, userID, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var session TimerHistorySession
		var stageID uuid.UUID
		var orderNumber sql.NullString

		err = rows.Scan(
			&stageID,
			&session.StageName,
			&orderNumber,
			&session.StartedAt,
			&session.CompletedAt,
			&session.DurationMinutes,
			&session.OrdersProcessed,
			&session.ItemsProcessed,
			&session.IsManual,
		)
		if err != nil {
			return nil, err
		}

		sessionStageID, idErr := kernel.UUIDFromBytes(stageID[:])
		if idErr != nil {
			return nil, idErr
		}
		session.StageID = sessionStageID
		session.OrderNumber = orderNumber.String

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (h GetTimerHistoryQueryHandler) loadStageGroups(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]TimerHistoryStageGroup, error) {
	groups := make([]TimerHistoryStageGroup, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.stage_id,
			st.name,
			COUNT(*) AS session_count,
			SUM(l.duration_minutes) AS total_minutes
		FROM timer_logs l
		JOIN stages st ON st.id = l.stage_id
		WHERE l.user_id = ? AND l.completed_at >= ?
		GROUP BY l.stage_id, st.name, st.order_index
		ORDER BY st.order_index
	`, userID, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var group TimerHistoryStageGroup
		var stageID uuid.UUID

		err = rows.Scan(
			&stageID,
			&group.StageName,
			&group.SessionCount,
			&group.TotalMinutes,
		)
		if err != nil {
			return nil, err
		}

		groupStageID, idErr := kernel.UUIDFromBytes(stageID[:])
		if idErr != nil {
			return nil, idErr
		}
		group.StageID = groupStageID

		groups = append(groups, group)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func (h GetTimerHistoryQueryHandler) loadActiveTimer(
	ctx context.Context,
	userID uuid.UUID,
) (*ActiveTimerStatus, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.stage_id,
			st.name,
			s.order_number,
			s.clock_state,
			s.clock_started_at,
			s.clock_accumulated,
			s.created_at
		FROM timer_sessions s
		JOIN stages st ON st.id = s.stage_id
		WHERE s.user_id = ? AND s.clock_state IN (?, ?)
	`, userID, int(timer.Running), int(timer.Paused)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var status ActiveTimerStatus
	var stageID uuid.UUID
	var clockState int
	var startedAt sql.NullTime
	var accumulated int64

	err = rows.Scan(
		&stageID,
		&status.StageName,
		&status.OrderNumber,
		&clockState,
		&startedAt,
		&accumulated,
		&status.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	statusStageID, idErr := kernel.UUIDFromBytes(stageID[:])
	if idErr != nil {
		return nil, idErr
	}
	status.StageID = statusStageID

	var clockStartedAt *time.Time
	if startedAt.Valid {
		startedAtValue := startedAt.Time
		clockStartedAt = &startedAtValue
	}

	clock, clockErr := timer.RestoreClock(timer.State(clockState), clockStartedAt, time.Duration(accumulated))
	if clockErr != nil {
		return nil, clockErr
	}
	status.ElapsedMinutes = timer.WholeMinutes(clock.Elapsed(time.Now().UTC()))
	status.IsPaused = clock.State() == timer.Paused

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &status, nil
}
