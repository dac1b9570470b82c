// Package jobs provides scheduled background tasks for the procurement
// service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleOrderReportJob - Runs every 15 minutes and logs every non-complete
// order that has sat untouched past the urgency threshold.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(listOrdersHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The report job logs failures and keeps its schedule; a failed run never
// stops the job.
package jobs
