// Package jobs provides scheduled background tasks for the order lifecycle
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReconciliationJob - Periodically polls the courier for every booked,
// non-terminal order and applies the observed status transitions.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, "*/5 * * * *", logger)
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
// The reconciliation schedule is a standard five-field cron expression taken
// from configuration, "*/5 * * * *" by default. Runs never overlap: a sweep
// still in flight when the next tick arrives causes that tick to be skipped.
//
// # Error Handling
//
// The sweep isolates failures per tenant and per order; only a failure of the
// sweep itself (tenant listing, cancelled context) surfaces as a job error.
package jobs
