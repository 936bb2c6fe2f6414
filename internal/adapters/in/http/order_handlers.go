package http

import (
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetOrderWorksheet handles GET /api/v1/orders/:orderID - returns the
// canonical order and worksheet read model.
func (s *Server) GetOrderWorksheet(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	query, err := queries.NewGetOrderWorksheetQuery(orderID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	worksheet, err := s.handlers.GetOrderWorksheet.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderWorksheetResponse(worksheet))
}

// MoveOrderNext handles POST /api/v1/orders/:orderID/move-next - advances
// the order one stage along the pipeline.
func (s *Server) MoveOrderNext(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
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

	cmd, err := commands.NewMoveOrderNextCommand(orderID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.MoveOrderNext.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newTransitionResponse(s.movedMessage(result), result))
}

// AssignOrderStage handles POST /api/v1/orders/:orderID/assign-stage -
// moves the order directly to the requested stage.
func (s *Server) AssignOrderStage(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req AssignStageRequest
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

	cmd, err := commands.NewAssignOrderStageCommand(orderID, targetStageID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.AssignOrderStage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newTransitionResponse(s.movedMessage(result), result))
}

// BulkMoveOrders handles POST /api/v1/orders/bulk-move - moves a set of
// orders to one stage, each order judged on its own.
func (s *Server) BulkMoveOrders(ctx echo.Context) error {
	var req BulkMoveRequest
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

	orderIDs := make([]kernel.UUID, len(req.OrderIDs))
	for i, raw := range req.OrderIDs {
		orderID, err := parseUUIDField("order_ids", raw)
		if err != nil {
			return s.renderError(ctx, err)
		}
		orderIDs[i] = orderID
	}

	cmd, err := commands.NewBulkMoveOrdersCommand(orderIDs, targetStageID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.BulkMoveOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BulkMoveResponse{
		Outcomes: s.newBulkMoveOutcomeResponses(result.Outcomes),
	})
}

// ShipOrder handles POST /api/v1/orders/:orderID/ship - marks the order
// shipped after its worksheet gate passes.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
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

	cmd, err := commands.NewMarkOrderShippedCommand(orderID, userID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.handlers.MarkOrderShipped.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	message := fmt.Sprintf("Order %s shipped", result.OrderNumber)
	return ctx.JSON(http.StatusOK, newTransitionResponse(message, result))
}

// SaveWorksheet handles PUT /api/v1/orders/:orderID/worksheet - replaces
// the order's worksheet progress rows and returns the resulting state.
func (s *Server) SaveWorksheet(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req SaveWorksheetRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	items := make([]commands.WorksheetItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = commands.WorksheetItemInput{
			ItemIndex:  item.ItemIndex,
			QtyDone:    item.QtyDone,
			IsComplete: item.IsComplete,
		}
	}

	cmd, err := commands.NewSaveWorksheetCommand(orderID, userID, items)
	if err != nil {
		return s.renderError(ctx, err)
	}

	state, err := s.handlers.SaveWorksheet.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newWorksheetStateResponse(state))
}

// MarkItemComplete handles POST /api/v1/orders/:orderID/items/:itemIndex/complete -
// toggles one line item's completion flag.
func (s *Server) MarkItemComplete(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return s.renderError(ctx, err)
	}
	itemIndex, err := parseIndexParam(ctx, "itemIndex")
	if err != nil {
		return s.renderError(ctx, err)
	}

	var req MarkItemCompleteRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	userID, err := parseUUIDField("user_id", req.UserID)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewMarkItemCompleteCommand(orderID, userID, itemIndex, req.IsComplete)
	if err != nil {
		return s.renderError(ctx, err)
	}

	state, err := s.handlers.MarkItemComplete.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newWorksheetStateResponse(state))
}
