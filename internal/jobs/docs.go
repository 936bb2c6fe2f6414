// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. InventoryRefreshJob - Periodically refreshes the advisory stock status of all unshipped orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshInventoryHandler, "0 */5 * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The refresh job's cron spec comes from configuration (six-field, with
// seconds). Stock status is advisory, so the schedule trades upstream load
// against freshness and nothing more.
//
// # Error Handling
//
// - Refresh runs skipped because the inventory circuit is open are logged as information, not failures
// - All other refresh errors are logged; the next scheduled run retries from scratch
// - No job touches timer sessions: sessions only ever change through explicit user commands
package jobs
