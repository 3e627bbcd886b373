// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. DeviationMonitorJob - Runs every ten seconds to measure each active
// courier's distance from the planned route corridor, record deviations and
// alert dispatchers on warning or critical drift.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(monitorDeviationsHandler, logger)
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
// The monitor sweep logs and skips routes it cannot evaluate, so one bad
// route does not starve the rest. Alerting is throttled per route through a
// cooldown persisted on the route itself, which keeps multiple engine
// instances from double-alerting.
package jobs
