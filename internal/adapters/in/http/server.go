// Package http exposes the fulfillment pipeline over a REST API.
// Handlers translate requests into commands and queries, map domain
// errors onto HTTP statuses, and never contain business rules.
package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/stage"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handlers bundles every use case the HTTP surface dispatches to.
// The composition root fills it once at startup.
type Handlers struct {
	// Command handlers
	AddWorker               commands.AddWorkerCommandHandler
	StartTimer              commands.StartTimerCommandHandler
	PauseTimer              commands.PauseTimerCommandHandler
	ResumeTimer             commands.ResumeTimerCommandHandler
	StopTimer               commands.StopTimerCommandHandler
	MoveOrderNext           commands.MoveOrderNextCommandHandler
	AssignOrderStage        commands.AssignOrderStageCommandHandler
	BulkMoveOrders          commands.BulkMoveOrdersCommandHandler
	MarkOrderShipped        commands.MarkOrderShippedCommandHandler
	SaveWorksheet           commands.SaveWorksheetCommandHandler
	MarkItemComplete        commands.MarkItemCompleteCommandHandler
	CreateBatch             commands.CreateBatchCommandHandler
	JoinBatchTimer          commands.JoinBatchTimerCommandHandler
	PauseBatchTimer         commands.PauseBatchTimerCommandHandler
	ResumeBatchTimer        commands.ResumeBatchTimerCommandHandler
	StopBatchTimer          commands.StopBatchTimerCommandHandler
	LeaveBatchTimer         commands.LeaveBatchTimerCommandHandler
	AdvanceBatch            commands.AdvanceBatchCommandHandler
	CompleteBatch           commands.CompleteBatchCommandHandler
	UpdateBatchItemProgress commands.UpdateBatchItemProgressCommandHandler

	// Query handlers
	GetAllWorkers      queries.GetAllWorkersQueryHandler
	GetActiveWorkers   queries.GetActiveWorkersQueryHandler
	GetHoursByUserDate queries.GetHoursByUserDateQueryHandler
	GetTimerHistory    queries.GetTimerHistoryQueryHandler
	GetBatchReport     queries.GetBatchReportQueryHandler
	GetOrderWorksheet  queries.GetOrderWorksheetQueryHandler
	GetBatchProgress   queries.GetBatchProgressQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
// The stage graph is served directly because pipeline configuration is
// immutable for the lifetime of the process.
type Server struct {
	handlers Handlers
	graph    *stage.Graph
	metrics  *Metrics
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, graph *stage.Graph, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		graph:    graph,
		metrics:  NewMetrics(),
		logger:   logger.With("component", "http_server"),
	}
}

// requestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call ctx.Validate on bound request bodies.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// RegisterRoutes mounts every API route on the echo instance together
// with the request validator the handlers rely on.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(s.metrics.Middleware())

	e.GET("/health", s.GetHealth)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api/v1")

	api.GET("/stages", s.GetStages)
	api.GET("/stages/:stageID/workers", s.GetStageWorkers)
	api.POST("/stages/:stageID/timer/start", s.StartStageTimer)
	api.POST("/stages/:stageID/timer/pause", s.PauseStageTimer)
	api.POST("/stages/:stageID/timer/resume", s.ResumeStageTimer)
	api.POST("/stages/:stageID/timer/stop", s.StopStageTimer)

	api.GET("/orders/:orderID", s.GetOrderWorksheet)
	api.POST("/orders/:orderID/move-next", s.MoveOrderNext)
	api.POST("/orders/:orderID/assign-stage", s.AssignOrderStage)
	api.POST("/orders/bulk-move", s.BulkMoveOrders)
	api.POST("/orders/:orderID/ship", s.ShipOrder)
	api.PUT("/orders/:orderID/worksheet", s.SaveWorksheet)
	api.POST("/orders/:orderID/items/:itemIndex/complete", s.MarkItemComplete)

	api.POST("/workers", s.CreateWorker)
	api.GET("/workers", s.GetWorkers)

	api.POST("/batches", s.CreateBatch)
	api.GET("/batches/:batchID", s.GetBatchProgress)
	api.POST("/batches/:batchID/timer/start", s.StartBatchTimer)
	api.POST("/batches/:batchID/timer/pause", s.PauseBatchTimer)
	api.POST("/batches/:batchID/timer/resume", s.ResumeBatchTimer)
	api.POST("/batches/:batchID/timer/stop", s.StopBatchTimer)
	api.POST("/batches/:batchID/timer/leave", s.LeaveBatchTimer)
	api.POST("/batches/:batchID/move-stage", s.AdvanceBatch)
	api.POST("/batches/:batchID/complete", s.CompleteBatch)
	api.POST("/batches/:batchID/orders/:orderID/items/:itemIndex/progress", s.UpdateBatchItemProgress)

	api.GET("/reports/hours", s.GetHoursReport)
	api.GET("/users/:userID/timer-history", s.GetTimerHistory)
	api.GET("/batches/:batchID/report", s.GetBatchReport)
}

// GetHealth handles GET /health - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
