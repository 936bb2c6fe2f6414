package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateBatch handles POST /api/v1/batches - groups orders into a new
// batch at the entry stage.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var req CreateBatchRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	orderIDs := make([]kernel.UUID, len(req.OrderIDs))
	for i, raw := range req.OrderIDs {
		orderID, err := parseUUIDField("order_ids", raw)
		if err != nil {
			return s.renderError(ctx, err)
		}
		orderIDs[i] = orderID
	}

	batchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBatchCommand(batchID, orderIDs)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.CreateBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: batchID.String()})
}

// GetBatchProgress handles GET /api/v1/batches/:batchID - returns the
// live progress read model.
func (s *Server) GetBatchProgress(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetBatchProgressQuery(batchID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	progress, err := s.handlers.GetBatchProgress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newBatchProgressResponse(progress))
}

// StartBatchTimer handles POST /api/v1/batches/:batchID/timer/start -
// joins the user to the shared timer, starting the clock if it is idle.
func (s *Server) StartBatchTimer(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
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

	cmd, err := commands.NewJoinBatchTimerCommand(batchID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.JoinBatchTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PauseBatchTimer handles POST /api/v1/batches/:batchID/timer/pause.
func (s *Server) PauseBatchTimer(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
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

	cmd, err := commands.NewPauseBatchTimerCommand(batchID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.PauseBatchTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResumeBatchTimer handles POST /api/v1/batches/:batchID/timer/resume.
func (s *Server) ResumeBatchTimer(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
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

	cmd, err := commands.NewResumeBatchTimerCommand(batchID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.ResumeBatchTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StopBatchTimer handles POST /api/v1/batches/:batchID/timer/stop -
// finalizes the shared clock and writes one ledger entry per member.
func (s *Server) StopBatchTimer(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req StopBatchTimerRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewStopBatchTimerCommand(batchID, userID, req.OrdersProcessed, req.ItemsProcessed)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.StopBatchTimer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StopBatchTimerResponse{
		DurationMinutes: result.DurationMinutes,
		MembersLogged:   result.MembersLogged,
	})
}

// LeaveBatchTimer handles POST /api/v1/batches/:batchID/timer/leave -
// removes the user from the shared timer without stopping the clock.
func (s *Server) LeaveBatchTimer(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
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

	cmd, err := commands.NewLeaveBatchTimerCommand(batchID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.LeaveBatchTimer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceBatch handles POST /api/v1/batches/:batchID/move-stage - moves
// every member order to the requested stage and reports each outcome.
func (s *Server) AdvanceBatch(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req AdvanceBatchRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}
	targetStageID, err := parseUUIDField("target_stage_id", req.TargetStageID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewAdvanceBatchCommand(batchID, targetStageID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.AdvanceBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AdvanceBatchResponse{
		BatchID:   result.BatchID.String(),
		ToStageID: result.ToStageID.String(),
		Outcomes:  s.newBulkMoveOutcomeResponses(result.Outcomes),
	})
}

// CompleteBatch handles POST /api/v1/batches/:batchID/complete - marks
// the batch done and releases its orders from batch mode.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
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

	cmd, err := commands.NewCompleteBatchCommand(batchID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.CompleteBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateBatchItemProgress handles
// POST /api/v1/batches/:batchID/orders/:orderID/items/:itemIndex/progress -
// records picking progress on one member order's item.
func (s *Server) UpdateBatchItemProgress(ctx echo.Context) error {
	batchID, err := parseUUIDParam(ctx, "batchID")
	if err != nil {
		return s.renderError(ctx, err)
	}
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return s.renderError(ctx, err)
	}
	itemIndex, err := parseIndexParam(ctx, "itemIndex")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req BatchItemProgressRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewUpdateBatchItemProgressCommand(batchID, orderID, userID, itemIndex, req.Qty)
	if err != nil {
		return s.renderError(ctx, err)
	}

	state, err := s.handlers.UpdateBatchItemProgress.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newWorksheetStateResponse(state))
}
