// Package jobs provides scheduled background tasks for crowdship.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field syntax with seconds)
// and drive command handlers exactly like HTTP requests do.
//
// # Available Jobs
//
// ShipmentExpiryJob cancels open shipments whose desired delivery date has passed.
// It runs on EXPIRY_JOB_SCHEDULE, every five minutes by default, and cancels at
// most commands.DefaultExpiryBatchSize shipments per run. Overlapping runs are skipped.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireShipmentsHandler, schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and retried on the next tick; a failed start leaves no job running.
package jobs
