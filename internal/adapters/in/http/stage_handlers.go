package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetStages handles GET /api/v1/stages - returns the pipeline configuration.
func (s *Server) GetStages(ctx echo.Context) error {
	stages := s.graph.Stages()

	response := make([]StageResponse, len(stages))
	for i, st := range stages {
		response[i] = newStageResponse(st)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStageWorkers handles GET /api/v1/stages/:stageID/workers - returns the
// stage's live roster.
func (s *Server) GetStageWorkers(ctx echo.Context) error {
	stageID, err := parseUUIDParam(ctx, "stageID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetActiveWorkersQuery(stageID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	workers, err := s.handlers.GetActiveWorkers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	response := make([]ActiveWorkerResponse, len(workers))
	for i, worker := range workers {
		response[i] = ActiveWorkerResponse{
			UserID:         worker.UserID.String(),
			UserName:       worker.UserName,
			ElapsedMinutes: worker.ElapsedMinutes,
			IsPaused:       worker.IsPaused,
			OrderNumber:    worker.OrderNumber,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartStageTimer handles POST /api/v1/stages/:stageID/timer/start - begins
// an individual work session.
func (s *Server) StartStageTimer(ctx echo.Context) error {
	stageID, err := parseUUIDParam(ctx, "stageID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req StartTimerRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	var orderID *kernel.UUID
	if req.OrderID != "" {
		id, err := parseUUIDField("order_id", req.OrderID)
		if err != nil {
			return s.renderError(ctx, err)
		}
		orderID = &id
	}

	cmd, err := commands.NewStartTimerCommand(userID, stageID, orderID, req.OrderNumber)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.StartTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PauseStageTimer handles POST /api/v1/stages/:stageID/timer/pause.
func (s *Server) PauseStageTimer(ctx echo.Context) error {
	stageID, err := parseUUIDParam(ctx, "stageID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req UserActionRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewPauseTimerCommand(userID, stageID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.PauseTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResumeStageTimer handles POST /api/v1/stages/:stageID/timer/resume.
func (s *Server) ResumeStageTimer(ctx echo.Context) error {
	stageID, err := parseUUIDParam(ctx, "stageID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req UserActionRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewResumeTimerCommand(userID, stageID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.ResumeTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StopStageTimer handles POST /api/v1/stages/:stageID/timer/stop - finalizes
// the session and returns its duration.
func (s *Server) StopStageTimer(ctx echo.Context) error {
	stageID, err := parseUUIDParam(ctx, "stageID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req StopTimerRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	isManual := true
	if req.IsManual != nil {
		isManual = *req.IsManual
	}

	cmd, err := commands.NewStopTimerCommand(userID, stageID, req.OrdersProcessed, req.ItemsProcessed, isManual)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.StopTimer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StopTimerResponse{DurationMinutes: result.DurationMinutes})
}
