// Package jobs provides scheduled background tasks for the fleet system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fleet service.
//
// # Available Jobs
//
// 1. NotificationExpiryJob - Runs every second to settle pending notifications whose response window elapsed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireNotificationsHandler, logger)
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
// The expiry job uses the cron expression "* * * * * *" which means it runs every
// second. This keeps the visible state of an offer close to its real deadline.
//
// # Error Handling
//
// - The expiry sweep skips rows that were resolved concurrently and settles the rest
// - Job failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
