// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order lifecycle management.
//
// # Available Jobs
//
// 1. OrderAdvancementJob - Periodically advances orders that have sat in the
// waiting status longer than the configured delay
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(advanceHandler, "@every 1m", logger)
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
// The advancement job uses a configurable cron spec, "@every 1m" by default.
// Runs are chained with SkipIfStillRunning so scans never overlap.
//
// # Error Handling
//
// - A failed scan is logged and retried on the next tick
// - Per-order failures inside a scan never abort the rest of the scan
// - Stop waits a bounded time for an in-flight scan before giving up
package jobs
