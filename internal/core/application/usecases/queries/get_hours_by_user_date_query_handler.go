package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHoursByUserDateQueryHandler aggregates the timer log into per-worker
// per-date totals with labor cost. Uses direct SQL queries for optimal read
// performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetHoursByUserDateQueryHandler(db, 8.0)
//	query, _ := NewGetHoursByUserDateQuery(PeriodDay)
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to build hours report: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d report rows\n", len(report.Rows))
type GetHoursByUserDateQueryHandler struct {
	db              *gorm.DB
	dailyLimitHours float64
}

// NewGetHoursByUserDateQueryHandler creates a handler for hours report
// queries. The daily limit comes from configuration and only marks rows,
// it never rejects work.
func NewGetHoursByUserDateQueryHandler(db *gorm.DB, dailyLimitHours float64) GetHoursByUserDateQueryHandler {
	return GetHoursByUserDateQueryHandler{db: db, dailyLimitHours: dailyLimitHours}
}

// Handle executes the aggregation over finalized log entries.
// Rows are grouped by worker and calendar date of completion, newest date
// first. A day with no stopped sessions produces no row.
func (h GetHoursByUserDateQueryHandler) Handle(
	ctx context.Context,
	query GetHoursByUserDateQuery,
) (GetHoursByUserDateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetHoursByUserDateQueryResponse{}, err
	}

	response := GetHoursByUserDateQueryResponse{
		Rows:            make([]HoursByUserDateRow, 0),
		DailyLimitHours: h.dailyLimitHours,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.user_id,
			w.name,
			w.hourly_rate,
			l.completed_at::date AS work_date,
			SUM(l.duration_minutes) AS total_minutes,
			COUNT(*) FILTER (WHERE l.orders_processed > 0) AS total_orders,
			SUM(l.items_processed) AS total_items
		FROM timer_logs l
		JOIN workers w ON w.id = l.user_id
		WHERE l.completed_at >= ?
		GROUP BY l.user_id, w.name, w.hourly_rate, l.completed_at::date
		ORDER BY work_date DESC, w.name
	`, query.Period().Start(time.Now())).Rows()
	if err != nil {
		return GetHoursByUserDateQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var row HoursByUserDateRow
		var id uuid.UUID
		var hourlyRate float64
		var workDate time.Time
		var totalMinutes int

		err = rows.Scan(
			&id,
			&row.UserName,
			&hourlyRate,
			&workDate,
			&totalMinutes,
			&row.TotalOrders,
			&row.TotalItems,
		)
		if err != nil {
			return GetHoursByUserDateQueryResponse{}, err
		}

		userID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetHoursByUserDateQueryResponse{}, idErr
		}
		row.UserID = userID

		row.Date = workDate.Format("2006-01-02")
		row.TotalHours = float64(totalMinutes) / 60.0
		row.LaborCost = row.TotalHours * hourlyRate
		row.OverLimit = row.TotalHours > h.dailyLimitHours

		response.Rows = append(response.Rows, row)
	}

	if err = rows.Err(); err != nil {
		return GetHoursByUserDateQueryResponse{}, err
	}

	return response, nil
}
