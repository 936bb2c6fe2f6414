package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateWorker handles POST /api/v1/workers - registers a worker on the
// reporting roster.
func (s *Server) CreateWorker(ctx echo.Context) error {
	var req CreateWorkerRequest
	if err := bindRequest(ctx, &req); err != nil {
		return s.renderError(ctx, err)
	}

	workerID := kernel.NewUUID()
	cmd, err := commands.NewAddWorkerCommand(workerID, req.Name, req.HourlyRate)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err := s.handlers.AddWorker.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: workerID.String()})
}

// GetWorkers handles GET /api/v1/workers - returns the roster ordered by
// name.
func (s *Server) GetWorkers(ctx echo.Context) error {
	query := queries.NewGetAllWorkersQuery()

	workers, err := s.handlers.GetAllWorkers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	response := make([]WorkerResponse, len(workers))
	for i, worker := range workers {
		response[i] = WorkerResponse{
			ID:         worker.ID.String(),
			Name:       worker.Name,
			HourlyRate: worker.HourlyRate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
