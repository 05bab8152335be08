// Package jobs provides scheduled background tasks for the workflow engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the order workflow depends on.
//
// # Available Jobs
//
// 1. WorkAssignmentJob - Runs every second to match queued cooking and delivery requests with available workers
// 2. WaitExpiryJob - Runs every five seconds to advance orders stuck past their configured stage waits
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignWorkHandler, expireWaitsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The assignment job ignores expected business errors (empty queue, no free workers)
// - The expiry job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
