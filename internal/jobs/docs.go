// Package jobs provides scheduled background tasks for the shipping system.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(overdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OverdueShipmentJob runs every fifteen minutes and reports shipments past
// their estimated delivery time that have not reached a terminal status.
// The sweep is read-only; it flags late deliveries without touching their
// timelines.
package jobs
