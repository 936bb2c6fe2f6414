package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/resilience"

	"github.com/robfig/cron/v3"
)

// InventoryRefreshJob periodically re-reads stock status for every
// unshipped order from the inventory oracle. The status is advisory, so
// the schedule is a freshness knob, not a correctness one.
type InventoryRefreshJob struct {
	handler commands.RefreshInventoryCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewInventoryRefreshJob creates a job that refreshes stock status on the
// given cron spec (six-field, with seconds).
func NewInventoryRefreshJob(
	handler commands.RefreshInventoryCommandHandler,
	spec string,
	logger *slog.Logger,
) *InventoryRefreshJob {
	return &InventoryRefreshJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "inventory_refresh_job"),
	}
}

// Start begins the refresh job on its configured schedule.
func (j *InventoryRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewRefreshInventoryCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An open circuit means the inventory system is down right
			// now; the next run retries, so this is not a job failure.
			if errors.Is(err, resilience.ErrUnavailable) {
				j.logger.InfoContext(ctx, "Inventory refresh skipped, inventory system unavailable")
				return
			}
			j.logger.ErrorContext(ctx, "Inventory refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Inventory refresh job started", "spec", j.spec)
	return nil
}

// Stop stops the refresh job.
func (j *InventoryRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Inventory refresh job stopped")
}
