package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetHoursByUserDateQueryIsNotConstructed = errors.New(
	"GetHoursByUserDateQuery must be created via NewGetHoursByUserDateQuery constructor",
)

// GetHoursByUserDateQuery retrieves per-worker per-date hour totals for a
// reporting window. Only finalized sessions contribute; a timer that is
// still running appears in the report after its stop lands in the log.
//
// Example:
//
//	query, err := NewGetHoursByUserDateQuery(PeriodWeek)
//	if err != nil {
//	    return err
//	}
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build hours report: %w", err)
//	}
//
//	for _, row := range report.Rows {
//	    fmt.Printf("%s %s: %.2f hours\n", row.Date, row.UserName, row.TotalHours)
//	}
type GetHoursByUserDateQuery struct { //nolint:recvcheck //using for validation
	period Period

	guard guard.ConstructorGuard
}

// NewGetHoursByUserDateQuery creates an hours report query for a window.
func NewGetHoursByUserDateQuery(period Period) (GetHoursByUserDateQuery, error) {
	query := GetHoursByUserDateQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setPeriod(period); err != nil {
		return GetHoursByUserDateQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetHoursByUserDateQueryIsNotConstructed if validation fails.
func (q GetHoursByUserDateQuery) Validate() error {
	return q.guard.Validate(ErrGetHoursByUserDateQueryIsNotConstructed)
}

// Period returns the reporting window.
func (q GetHoursByUserDateQuery) Period() Period {
	return q.period
}

func (q *GetHoursByUserDateQuery) setPeriod(period Period) error {
	if err := period.Validate(); err != nil {
		return err
	}

	q.period = period
	return nil
}

// HoursByUserDateRow is one (worker, date) line of the hours report.
// LaborCost is informational arithmetic on the worker's configured rate.
// OverLimit flags dates whose total exceeds the configured daily limit
// without blocking anything; the limit is never enforced at timer start.
type HoursByUserDateRow struct {
	UserID      kernel.UUID
	UserName    string
	Date        string
	TotalHours  float64
	TotalOrders int
	TotalItems  int
	LaborCost   float64
	OverLimit   bool
}

// GetHoursByUserDateQueryResponse carries the report rows together with
// the limit they were flagged against.
type GetHoursByUserDateQueryResponse struct {
	Rows            []HoursByUserDateRow
	DailyLimitHours float64
}
