package http

import (
	"fmt"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"
)

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// StageResponse is one stage of the pipeline configuration.
type StageResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	OrderIndex        int    `json:"order_index"`
	Color             string `json:"color"`
	IsTerminal        bool   `json:"is_terminal"`
	RequiresWorksheet bool   `json:"requires_worksheet"`
}

func newStageResponse(s *stage.Stage) StageResponse {
	return StageResponse{
		ID:                s.ID().String(),
		Name:              s.Name(),
		OrderIndex:        s.OrderIndex(),
		Color:             s.Color(),
		IsTerminal:        s.IsTerminal(),
		RequiresWorksheet: s.RequiresWorksheet(),
	}
}

// DeductionLineResponse is one SKU the inventory system deducted.
type DeductionLineResponse struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// DeductionShortageResponse is one SKU the inventory system could not
// fully deduct.
type DeductionShortageResponse struct {
	SKU      string `json:"sku"`
	Reason   string `json:"reason"`
	Shortage int    `json:"shortage"`
}

// DeductionResponse reports the outcome of a best-effort inventory
// deduction. Shortages are informational; the stage transition that
// triggered them has already happened.
type DeductionResponse struct {
	Deductions   []DeductionLineResponse     `json:"deductions"`
	Shortages    []DeductionShortageResponse `json:"shortages"`
	HasShortages bool                        `json:"has_shortages"`
}

func newDeductionResponse(d *ports.DeductionResult) *DeductionResponse {
	if d == nil {
		return nil
	}

	deductions := make([]DeductionLineResponse, len(d.Deductions))
	for i, line := range d.Deductions {
		deductions[i] = DeductionLineResponse{SKU: line.SKU, Qty: line.Qty}
	}
	shortages := make([]DeductionShortageResponse, len(d.Shortages))
	for i, shortage := range d.Shortages {
		shortages[i] = DeductionShortageResponse{
			SKU:      shortage.SKU,
			Reason:   shortage.Reason,
			Shortage: shortage.Shortage,
		}
	}

	return &DeductionResponse{
		Deductions:   deductions,
		Shortages:    shortages,
		HasShortages: d.HasShortages(),
	}
}

// TransitionResponse reports one completed stage transition.
type TransitionResponse struct {
	Message            string             `json:"message"`
	OrderID            string             `json:"order_id"`
	OrderNumber        string             `json:"order_number"`
	FromStageID        string             `json:"from_stage_id"`
	ToStageID          string             `json:"to_stage_id"`
	InventoryDeduction *DeductionResponse `json:"inventory_deduction,omitempty"`
}

func newTransitionResponse(message string, result commands.StageTransitionResult) TransitionResponse {
	return TransitionResponse{
		Message:            message,
		OrderID:            result.OrderID.String(),
		OrderNumber:        result.OrderNumber,
		FromStageID:        result.FromStageID.String(),
		ToStageID:          result.ToStageID.String(),
		InventoryDeduction: newDeductionResponse(result.Deduction),
	}
}

// movedMessage renders the summary line for a completed move, naming the
// destination stage when the graph knows it.
func (s *Server) movedMessage(result commands.StageTransitionResult) string {
	if target, err := s.graph.StageByID(result.ToStageID); err == nil {
		return fmt.Sprintf("Order %s moved to %s", result.OrderNumber, target.Name())
	}
	return fmt.Sprintf("Order %s moved", result.OrderNumber)
}

// BulkMoveOutcomeResponse is one order's outcome within a bulk move.
// Exactly one of Transition and FailureReason is set.
type BulkMoveOutcomeResponse struct {
	OrderID       string              `json:"order_id"`
	Transition    *TransitionResponse `json:"transition,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
}

// BulkMoveResponse aggregates per-order outcomes of a bulk move.
type BulkMoveResponse struct {
	Outcomes []BulkMoveOutcomeResponse `json:"outcomes"`
}

func (s *Server) newBulkMoveOutcomeResponses(outcomes []commands.BulkMoveOutcome) []BulkMoveOutcomeResponse {
	responses := make([]BulkMoveOutcomeResponse, len(outcomes))
	for i, outcome := range outcomes {
		responses[i] = BulkMoveOutcomeResponse{
			OrderID:       outcome.OrderID.String(),
			FailureReason: outcome.FailureReason,
		}
		if outcome.Transition != nil {
			transition := newTransitionResponse(s.movedMessage(*outcome.Transition), *outcome.Transition)
			responses[i].Transition = &transition
		}
	}
	return responses
}

// AdvanceBatchResponse aggregates per-order outcomes of a batch advance.
type AdvanceBatchResponse struct {
	BatchID   string                    `json:"batch_id"`
	ToStageID string                    `json:"to_stage_id"`
	Outcomes  []BulkMoveOutcomeResponse `json:"outcomes"`
}

// StopTimerResponse reports the finalized duration of an individual
// session.
type StopTimerResponse struct {
	DurationMinutes int `json:"duration_minutes"`
}

// StopBatchTimerResponse reports the finalized duration of a shared batch
// timer and how many members received a ledger entry for it.
type StopBatchTimerResponse struct {
	DurationMinutes int `json:"duration_minutes"`
	MembersLogged   int `json:"members_logged"`
}

// WorksheetItemStateResponse is one line item's canonical state after a
// worksheet mutation.
type WorksheetItemStateResponse struct {
	Index      int    `json:"index"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	QtyNeeded  int    `json:"qty_needed"`
	QtyDone    int    `json:"qty_done"`
	IsComplete bool   `json:"is_complete"`
}

// WorksheetStateResponse is the order's worksheet state after a mutation,
// returned so clients can reconcile without a follow-up read.
type WorksheetStateResponse struct {
	OrderID           string                       `json:"order_id"`
	Items             []WorksheetItemStateResponse `json:"items"`
	WorksheetComplete bool                         `json:"worksheet_complete"`
}

func newWorksheetStateResponse(state commands.WorksheetState) WorksheetStateResponse {
	items := make([]WorksheetItemStateResponse, len(state.Items))
	for i, item := range state.Items {
		items[i] = WorksheetItemStateResponse{
			Index:      item.Index,
			SKU:        item.SKU,
			Name:       item.Name,
			QtyNeeded:  item.QtyNeeded,
			QtyDone:    item.QtyDone,
			IsComplete: item.IsComplete,
		}
	}
	return WorksheetStateResponse{
		OrderID:           state.OrderID.String(),
		Items:             items,
		WorksheetComplete: state.WorksheetComplete,
	}
}

// WorkerResponse is one worker on the reporting roster.
type WorkerResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
}

// ActiveWorkerResponse is one live session on a stage's roster.
type ActiveWorkerResponse struct {
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	ElapsedMinutes int    `json:"elapsed_minutes"`
	IsPaused       bool   `json:"is_paused"`
	OrderNumber    string `json:"order_number,omitempty"`
}

// HoursReportRowResponse is one (worker, date) line of the hours report.
type HoursReportRowResponse struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	Date        string  `json:"date"`
	TotalHours  float64 `json:"total_hours"`
	TotalOrders int     `json:"total_orders"`
	TotalItems  int     `json:"total_items"`
	LaborCost   float64 `json:"labor_cost"`
	OverLimit   bool    `json:"over_limit"`
}

// HoursReportResponse is the hours report together with the daily limit
// its rows were flagged against.
type HoursReportResponse struct {
	Data            []HoursReportRowResponse `json:"data"`
	DailyLimitHours float64                  `json:"daily_limit_hours"`
}

func newHoursReportResponse(report queries.GetHoursByUserDateQueryResponse) HoursReportResponse {
	rows := make([]HoursReportRowResponse, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = HoursReportRowResponse{
			UserID:      row.UserID.String(),
			UserName:    row.UserName,
			Date:        row.Date,
			TotalHours:  row.TotalHours,
			TotalOrders: row.TotalOrders,
			TotalItems:  row.TotalItems,
			LaborCost:   row.LaborCost,
			OverLimit:   row.OverLimit,
		}
	}
	return HoursReportResponse{
		Data:            rows,
		DailyLimitHours: report.DailyLimitHours,
	}
}

// TimerHistoryTotalsResponse is the window-wide rollup of a worker's
// finalized sessions.
type TimerHistoryTotalsResponse struct {
	SessionCount int     `json:"session_count"`
	TotalMinutes int     `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
	TotalOrders  int     `json:"total_orders"`
	TotalItems   int     `json:"total_items"`
}

// TimerHistorySessionResponse is one finalized session line.
type TimerHistorySessionResponse struct {
	StageID         string    `json:"stage_id"`
	StageName       string    `json:"stage_name"`
	OrderNumber     string    `json:"order_number,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationMinutes int       `json:"duration_minutes"`
	OrdersProcessed int       `json:"orders_processed"`
	ItemsProcessed  int       `json:"items_processed"`
	IsManual        bool      `json:"is_manual"`
}

// ActiveTimerResponse describes the worker's live session.
type ActiveTimerResponse struct {
	StageID        string    `json:"stage_id"`
	StageName      string    `json:"stage_name"`
	IsPaused       bool      `json:"is_paused"`
	ElapsedMinutes int       `json:"elapsed_minutes"`
	OrderNumber    string    `json:"order_number,omitempty"`
	StartedAt      time.Time `json:"started_at"`
}

// TimerHistoryStageGroupResponse is the per-stage rollup of a worker's
// sessions.
type TimerHistoryStageGroupResponse struct {
	StageID      string `json:"stage_id"`
	StageName    string `json:"stage_name"`
	SessionCount int    `json:"session_count"`
	TotalMinutes int    `json:"total_minutes"`
}

// TimerHistoryResponse is the full history read model for one worker and
// window.
type TimerHistoryResponse struct {
	PeriodLabel string                           `json:"period_label"`
	Totals      TimerHistoryTotalsResponse       `json:"totals"`
	Sessions    []TimerHistorySessionResponse    `json:"sessions"`
	ActiveTimer *ActiveTimerResponse             `json:"active_timer,omitempty"`
	ByStage     []TimerHistoryStageGroupResponse `json:"by_stage"`
}

func newTimerHistoryResponse(history queries.GetTimerHistoryQueryResponse) TimerHistoryResponse {
	sessions := make([]TimerHistorySessionResponse, len(history.Sessions))
	for i, session := range history.Sessions {
		sessions[i] = TimerHistorySessionResponse{
			StageID:         session.StageID.String(),
			StageName:       session.StageName,
			OrderNumber:     session.OrderNumber,
			StartedAt:       session.StartedAt,
			CompletedAt:     session.CompletedAt,
			DurationMinutes: session.DurationMinutes,
			OrdersProcessed: session.OrdersProcessed,
			ItemsProcessed:  session.ItemsProcessed,
			IsManual:        session.IsManual,
		}
	}

	byStage := make([]TimerHistoryStageGroupResponse, len(history.ByStage))
	for i, group := range history.ByStage {
		byStage[i] = TimerHistoryStageGroupResponse{
			StageID:      group.StageID.String(),
			StageName:    group.StageName,
			SessionCount: group.SessionCount,
			TotalMinutes: group.TotalMinutes,
		}
	}

	response := TimerHistoryResponse{
		PeriodLabel: history.PeriodLabel,
		Totals: TimerHistoryTotalsResponse{
			SessionCount: history.Totals.SessionCount,
			TotalMinutes: history.Totals.TotalMinutes,
			TotalHours:   history.Totals.TotalHours,
			TotalOrders:  history.Totals.TotalOrders,
			TotalItems:   history.Totals.TotalItems,
		},
		Sessions: sessions,
		ByStage:  byStage,
	}
	if history.ActiveTimer != nil {
		response.ActiveTimer = &ActiveTimerResponse{
			StageID:        history.ActiveTimer.StageID.String(),
			StageName:      history.ActiveTimer.StageName,
			IsPaused:       history.ActiveTimer.IsPaused,
			ElapsedMinutes: history.ActiveTimer.ElapsedMinutes,
			OrderNumber:    history.ActiveTimer.OrderNumber,
			StartedAt:      history.ActiveTimer.StartedAt,
		}
	}
	return response
}

// BatchWorkerTimeResponse is one worker's contribution to a batch's
// fulfillment time.
type BatchWorkerTimeResponse struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Minutes    int     `json:"minutes"`
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`
	Cost       float64 `json:"cost"`
}

// BatchFulfillmentTimeResponse aggregates this service's own ledger
// entries scoped to the batch.
type BatchFulfillmentTimeResponse struct {
	TotalMinutes int                       `json:"total_minutes"`
	TotalHours   float64                   `json:"total_hours"`
	TotalItems   int                       `json:"total_items"`
	WorkerCount  int                       `json:"worker_count"`
	Workers      []BatchWorkerTimeResponse `json:"workers"`
}

// BatchProductionTimeResponse mirrors the upstream production ledger's
// record for the batch.
type BatchProductionTimeResponse struct {
	TotalMinutes int     `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
	TotalCost    float64 `json:"total_cost"`
	WorkerCount  int     `json:"worker_count"`
}

// BatchCombinedMetricsResponse merges fulfillment and production figures.
type BatchCombinedMetricsResponse struct {
	TotalHours    float64 `json:"total_hours"`
	ItemsPerHour  float64 `json:"items_per_hour"`
	TotalCost     float64 `json:"total_cost"`
	AvgHourlyRate float64 `json:"avg_hourly_rate"`
}

// BatchReportResponse is the full time and cost report for one batch.
// ProductionTime is absent when the upstream ledger has no record.
type BatchReportResponse struct {
	BatchID         string                       `json:"batch_id"`
	FulfillmentTime BatchFulfillmentTimeResponse `json:"fulfillment_time"`
	ProductionTime  *BatchProductionTimeResponse `json:"production_time,omitempty"`
	CombinedMetrics BatchCombinedMetricsResponse `json:"combined_metrics"`
}

func newBatchReportResponse(report queries.GetBatchReportQueryResponse) BatchReportResponse {
	workers := make([]BatchWorkerTimeResponse, len(report.FulfillmentTime.Workers))
	for i, worker := range report.FulfillmentTime.Workers {
		workers[i] = BatchWorkerTimeResponse{
			UserID:     worker.UserID.String(),
			UserName:   worker.UserName,
			Minutes:    worker.Minutes,
			Hours:      worker.Hours,
			HourlyRate: worker.HourlyRate,
			Cost:       worker.Cost,
		}
	}

	response := BatchReportResponse{
		BatchID: report.BatchID.String(),
		FulfillmentTime: BatchFulfillmentTimeResponse{
			TotalMinutes: report.FulfillmentTime.TotalMinutes,
			TotalHours:   report.FulfillmentTime.TotalHours,
			TotalItems:   report.FulfillmentTime.TotalItems,
			WorkerCount:  report.FulfillmentTime.WorkerCount,
			Workers:      workers,
		},
		CombinedMetrics: BatchCombinedMetricsResponse{
			TotalHours:    report.CombinedMetrics.TotalHours,
			ItemsPerHour:  report.CombinedMetrics.ItemsPerHour,
			TotalCost:     report.CombinedMetrics.TotalCost,
			AvgHourlyRate: report.CombinedMetrics.AvgHourlyRate,
		},
	}
	if report.ProductionTime != nil {
		response.ProductionTime = &BatchProductionTimeResponse{
			TotalMinutes: report.ProductionTime.TotalMinutes,
			TotalHours:   report.ProductionTime.TotalHours,
			TotalCost:    report.ProductionTime.TotalCost,
			WorkerCount:  report.ProductionTime.WorkerCount,
		}
	}
	return response
}

// BatchOrderProgressResponse is one member order's worksheet progress.
type BatchOrderProgressResponse struct {
	OrderID           string `json:"order_id"`
	Number            string `json:"number"`
	ItemsDone         int    `json:"items_done"`
	ItemsNeeded       int    `json:"items_needed"`
	WorksheetComplete bool   `json:"worksheet_complete"`
}

// BatchWorkerPresenceResponse is one worker currently joined to the
// batch timer.
type BatchWorkerPresenceResponse struct {
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	JoinedAt time.Time `json:"joined_at"`
}

// BatchProgressResponse is the live progress read model for one batch.
type BatchProgressResponse struct {
	BatchID        string                        `json:"batch_id"`
	CurrentStageID string                        `json:"current_stage_id"`
	StageName      string                        `json:"stage_name"`
	Completed      bool                          `json:"completed"`
	ClockState     string                        `json:"clock_state"`
	ElapsedMinutes int                           `json:"elapsed_minutes"`
	ItemsDone      int                           `json:"items_done"`
	ItemsNeeded    int                           `json:"items_needed"`
	Orders         []BatchOrderProgressResponse  `json:"orders"`
	ActiveWorkers  []BatchWorkerPresenceResponse `json:"active_workers"`
}

func newBatchProgressResponse(progress queries.GetBatchProgressQueryResponse) BatchProgressResponse {
	orders := make([]BatchOrderProgressResponse, len(progress.Orders))
	for i, op := range progress.Orders {
		orders[i] = BatchOrderProgressResponse{
			OrderID:           op.OrderID.String(),
			Number:            op.Number,
			ItemsDone:         op.ItemsDone,
			ItemsNeeded:       op.ItemsNeeded,
			WorksheetComplete: op.WorksheetComplete,
		}
	}
	workers := make([]BatchWorkerPresenceResponse, len(progress.ActiveWorkers))
	for i, presence := range progress.ActiveWorkers {
		workers[i] = BatchWorkerPresenceResponse{
			UserID:   presence.UserID.String(),
			UserName: presence.UserName,
			JoinedAt: presence.JoinedAt,
		}
	}

	return BatchProgressResponse{
		BatchID:        progress.BatchID.String(),
		CurrentStageID: progress.CurrentStageID.String(),
		StageName:      progress.StageName,
		Completed:      progress.Completed,
		ClockState:     progress.ClockState.String(),
		ElapsedMinutes: progress.ElapsedMinutes,
		ItemsDone:      progress.ItemsDone,
		ItemsNeeded:    progress.ItemsNeeded,
		Orders:         orders,
		ActiveWorkers:  workers,
	}
}

// OrderInventoryResponse is the order's stock snapshot.
type OrderInventoryResponse struct {
	Level           string   `json:"level"`
	OutOfStockCount int      `json:"out_of_stock_count"`
	LowStockItems   []string `json:"low_stock_items"`
}

func newOrderInventoryResponse(status *order.InventoryStatus) *OrderInventoryResponse {
	if status == nil {
		return nil
	}
	return &OrderInventoryResponse{
		Level:           status.Level().String(),
		OutOfStockCount: status.OutOfStockCount(),
		LowStockItems:   status.LowStockItems(),
	}
}

// OrderWorksheetItemResponse is one line item in display order.
type OrderWorksheetItemResponse struct {
	Index      int    `json:"index"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Size       string `json:"size,omitempty"`
	QtyNeeded  int    `json:"qty_needed"`
	QtyDone    int    `json:"qty_done"`
	IsComplete bool   `json:"is_complete"`
}

// OrderWorksheetResponse is the canonical order and worksheet read model.
type OrderWorksheetResponse struct {
	OrderID           string                       `json:"order_id"`
	Number            string                       `json:"number"`
	CustomerName      string                       `json:"customer_name"`
	CurrentStageID    string                       `json:"current_stage_id"`
	StageName         string                       `json:"stage_name"`
	BatchID           *string                      `json:"batch_id,omitempty"`
	WorksheetComplete bool                         `json:"worksheet_complete"`
	Items             []OrderWorksheetItemResponse `json:"items"`
	Inventory         *OrderInventoryResponse      `json:"inventory,omitempty"`
	CreatedAt         time.Time                    `json:"created_at"`
}

func newOrderWorksheetResponse(worksheet queries.GetOrderWorksheetQueryResponse) OrderWorksheetResponse {
	items := make([]OrderWorksheetItemResponse, len(worksheet.Items))
	for i, item := range worksheet.Items {
		items[i] = OrderWorksheetItemResponse{
			Index:      item.Index,
			SKU:        item.SKU,
			Name:       item.Name,
			Size:       item.Size,
			QtyNeeded:  item.QtyNeeded,
			QtyDone:    item.QtyDone,
			IsComplete: item.IsComplete,
		}
	}

	response := OrderWorksheetResponse{
		OrderID:           worksheet.OrderID.String(),
		Number:            worksheet.Number,
		CustomerName:      worksheet.CustomerName,
		CurrentStageID:    worksheet.CurrentStageID.String(),
		StageName:         worksheet.StageName,
		WorksheetComplete: worksheet.WorksheetComplete,
		Items:             items,
		Inventory:         newOrderInventoryResponse(worksheet.Inventory),
		CreatedAt:         worksheet.CreatedAt,
	}
	if worksheet.BatchID != nil {
		batchID := worksheet.BatchID.String()
		response.BatchID = &batchID
	}
	return response
}
