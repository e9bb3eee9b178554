// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to publish domain events written to
// the outbox (order.placed, order.status_changed) to Kafka
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(relayHandler, cfg.OutboxBatchSize, logger)
//	if err != nil {
//		return err
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Delivery guarantees
//
// Messages are marked published only after the broker acknowledged them, in
// the same transaction that locked them. A crash between the two republishes
// the batch, so consumers see every event at least once and must deduplicate
// on the message_id header.
//
// # Error Handling
//
// Failed runs are logged and leave the batch pending for the next tick.
// Overlapping ticks are skipped while a run is still in progress.
package jobs
