package http

// Request bodies for every mutating route. UUIDs travel as strings and
// are parsed after validation; user identity travels in the body because
// authentication is handled upstream of this service.

// UserActionRequest carries the acting user for routes with no other input.
type UserActionRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// StartTimerRequest starts an individual work session at a stage.
// OrderID optionally pins the session to one order for reporting.
type StartTimerRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	OrderID     string `json:"order_id" validate:"omitempty,uuid"`
	OrderNumber string `json:"order_number"`
}

// StopTimerRequest finalizes an individual session with its throughput
// counts. IsManual defaults to true; clients that stop sessions on the
// user's behalf can record that by sending false.
type StopTimerRequest struct {
	UserID          string `json:"user_id" validate:"required,uuid"`
	OrdersProcessed int    `json:"orders_processed" validate:"gte=0"`
	ItemsProcessed  int    `json:"items_processed" validate:"gte=0"`
	IsManual        *bool  `json:"is_manual"`
}

// AssignStageRequest moves an order directly to the named stage.
type AssignStageRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	TargetStageID string `json:"target_stage_id" validate:"required,uuid"`
}

// BulkMoveRequest moves a set of orders to the named stage, each order
// judged on its own.
type BulkMoveRequest struct {
	UserID        string   `json:"user_id" validate:"required,uuid"`
	OrderIDs      []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
	TargetStageID string   `json:"target_stage_id" validate:"required,uuid"`
}

// WorksheetItemRequest is one progress row of a worksheet save.
type WorksheetItemRequest struct {
	ItemIndex  int  `json:"item_index" validate:"gte=0"`
	QtyDone    int  `json:"qty_done" validate:"gte=0"`
	IsComplete bool `json:"is_complete"`
}

// SaveWorksheetRequest replaces the progress rows of an order's worksheet.
type SaveWorksheetRequest struct {
	UserID string                 `json:"user_id" validate:"required,uuid"`
	Items  []WorksheetItemRequest `json:"items" validate:"required,min=1,dive"`
}

// MarkItemCompleteRequest toggles one line item's completion flag.
type MarkItemCompleteRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	IsComplete bool   `json:"is_complete"`
}

// CreateBatchRequest groups the named orders into a new batch.
type CreateBatchRequest struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
}

// StopBatchTimerRequest finalizes a batch's shared timer with the
// throughput counts attributed to the stopping member.
type StopBatchTimerRequest struct {
	UserID          string `json:"user_id" validate:"required,uuid"`
	OrdersProcessed int    `json:"orders_processed" validate:"gte=0"`
	ItemsProcessed  int    `json:"items_processed" validate:"gte=0"`
}

// AdvanceBatchRequest moves every member order of a batch to the named
// stage.
type AdvanceBatchRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	TargetStageID string `json:"target_stage_id" validate:"required,uuid"`
}

// BatchItemProgressRequest records picking progress on one item of a
// member order while working in batch mode.
type BatchItemProgressRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Qty    int    `json:"qty" validate:"gte=0"`
}

// CreateWorkerRequest registers a worker on the reporting roster.
type CreateWorkerRequest struct {
	Name       string  `json:"name" validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
}
