package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTimerHistoryQueryIsNotConstructed = errors.New(
	"GetTimerHistoryQuery must be created via NewGetTimerHistoryQuery constructor",
)

// GetTimerHistoryQuery retrieves one worker's timer activity for a
// reporting window: finalized sessions, aggregate totals, a per-stage
// breakdown, and the worker's live session if one is open.
//
// Example:
//
//	query, err := NewGetTimerHistoryQuery(userID, PeriodWeek)
//	if err != nil {
//	    return err
//	}
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load timer history: %w", err)
//	}
//
//	if history.ActiveTimer != nil {
//	    fmt.Printf("live on %s for %d minutes\n",
//	        history.ActiveTimer.StageName, history.ActiveTimer.ElapsedMinutes)
//	}
type GetTimerHistoryQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	period Period

	guard guard.ConstructorGuard
}

// NewGetTimerHistoryQuery creates a history query for one worker.
func NewGetTimerHistoryQuery(userID kernel.UUID, period Period) (GetTimerHistoryQuery, error) {
	query := GetTimerHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setUserID(userID),
		query.setPeriod(period),
	); err != nil {
		return GetTimerHistoryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTimerHistoryQueryIsNotConstructed if validation fails.
func (q GetTimerHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTimerHistoryQueryIsNotConstructed)
}

// UserID returns the worker whose history is requested.
func (q GetTimerHistoryQuery) UserID() kernel.UUID {
	return q.userID
}

// Period returns the reporting window.
func (q GetTimerHistoryQuery) Period() Period {
	return q.period
}

func (q *GetTimerHistoryQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

func (q *GetTimerHistoryQuery) setPeriod(period Period) error {
	if err := period.Validate(); err != nil {
		return err
	}

	q.period = period
	return nil
}

// TimerHistoryTotals aggregates a worker's finalized sessions in the window.
type TimerHistoryTotals struct {
	SessionCount int
	TotalMinutes int
	TotalHours   float64
	TotalOrders  int
	TotalItems   int
}

// TimerHistorySession is one finalized session line in the history.
// OrderNumber is empty for sessions that were not pinned to an order.
type TimerHistorySession struct {
	StageID         kernel.UUID
	StageName       string
	OrderNumber     string
	StartedAt       time.Time
	CompletedAt     time.Time
	DurationMinutes int
	OrdersProcessed int
	ItemsProcessed  int
	IsManual        bool
}

// TimerHistoryStageGroup is the per-stage rollup of a worker's sessions,
// ordered by the stage's pipeline position.
type TimerHistoryStageGroup struct {
	StageID      kernel.UUID
	StageName    string
	SessionCount int
	TotalMinutes int
}

// ActiveTimerStatus describes the worker's live session, if any.
// ElapsedMinutes is derived from the session clock at read time.
type ActiveTimerStatus struct {
	StageID        kernel.UUID
	StageName      string
	IsPaused       bool
	ElapsedMinutes int
	OrderNumber    string
	StartedAt      time.Time
}

// GetTimerHistoryQueryResponse is the full history read model for one
// worker and window. ActiveTimer is nil when the worker has no live session.
type GetTimerHistoryQueryResponse struct {
	Totals      TimerHistoryTotals
	Sessions    []TimerHistorySession
	ActiveTimer *ActiveTimerStatus
	ByStage     []TimerHistoryStageGroup
	PeriodLabel string
}
