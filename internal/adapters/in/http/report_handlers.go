package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetHoursReport handles GET /api/v1/reports/hours?period= - returns the
// per-worker per-date hours report for the requested window.
func (s *Server) GetHoursReport(ctx echo.Context) error {
	period, err := queries.PeriodFromString(ctx.QueryParam("period"))
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetHoursByUserDateQuery(period)
	if err != nil {
		return s.renderError(ctx, err)
	}

	report, err := s.handlers.GetHoursByUserDate.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newHoursReportResponse(report))
}

// GetTimerHistory handles GET /api/v1/users/:userID/timer-history?period= -
// returns the worker's session history for the requested window.
func (s *Server) GetTimerHistory(ctx echo.Context) error {
	userID, err := parseUUIDParam(ctx, "userID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	period, err := queries.PeriodFromString(ctx.QueryParam("period"))
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetTimerHistoryQuery(userID, period)
	if err != nil {
		return s.renderError(ctx, err)
	}

	history, err := s.handlers.GetTimerHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newTimerHistoryResponse(history))
}

// GetBatchReport handles GET /api/v1/batches/:batchID/report - returns
// the batch's time and cost report.
func (s *Server) GetBatchReport(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetBatchReportQuery(batchID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	report, err := s.handlers.GetBatchReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newBatchReportResponse(report))
}
