package queries

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Period selects the reporting window for time-scoped queries. Windows are
// calendar-aligned in UTC: the current day, the current week starting on
// Monday, or the current month.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// getValidPeriods returns the set of supported reporting windows.
func getValidPeriods() map[Period]bool {
	return map[Period]bool{
		PeriodDay:   true,
		PeriodWeek:  true,
		PeriodMonth: true,
	}
}

// PeriodFromString parses a period from its query-string form.
func PeriodFromString(s string) (Period, error) {
	period := Period(s)
	if err := period.Validate(); err != nil {
		return "", err
	}
	return period, nil
}

// Validate checks that the period is one of the supported windows.
func (p Period) Validate() error {
	if !getValidPeriods()[p] {
		return errs.NewValueIsInvalidErrorWithCause("period", fmt.Errorf("%q is not a valid period", string(p)))
	}
	return nil
}

// Start returns the inclusive lower bound of the window containing now.
func (p Period) Start(now time.Time) time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodWeek:
		// time.Weekday counts Sunday as 0; the reporting week starts Monday.
		offset := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return midnight
	}
}

// Label returns the display label reports attach to the window.
func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "This Week"
	case PeriodMonth:
		return "This Month"
	default:
		return "Today"
	}
}
