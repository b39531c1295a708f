// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. DocumentBackfillJob - Runs every minute to generate invoices and delivery
// notes for orders that reached a triggering state without a document, either
// because generation failed after the primary write or because the order was
// created directly in that state.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(backfillHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Backfill failures are logged and retried on the next tick; generation is
// idempotent, so a partially processed batch is safe to sweep again.
package jobs
