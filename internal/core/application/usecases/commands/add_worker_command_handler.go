package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/worker"
)

// AddWorkerCommandHandler registers a worker.
type AddWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
}

// NewAddWorkerCommandHandler creates a handler for worker registration.
func NewAddWorkerCommandHandler(uowFactory WorkerUoWFactory) AddWorkerCommandHandler {
	return AddWorkerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the worker. Registering an already-known worker ID fails with
// a conflict from the repository.
func (h AddWorkerCommandHandler) Handle(ctx context.Context, cmd AddWorkerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := worker.NewWorker(cmd.WorkerID(), cmd.Name(), cmd.HourlyRate())
	if err != nil {
		return err
	}

	if err := uow.WorkerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
