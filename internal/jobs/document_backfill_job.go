package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const backfillBatchSize = 100

// DocumentBackfillJob periodically sweeps for orders whose invoice or
// delivery note is missing and re-runs generation for them. It covers orders
// created directly in a triggering state and orders whose generation attempt
// failed after the primary write committed.
type DocumentBackfillJob struct {
	handler commands.BackfillDocumentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDocumentBackfillJob creates a new job for backfilling documents.
// Uses BackfillDocumentsCommandHandler to re-run idempotent generation.
func NewDocumentBackfillJob(handler commands.BackfillDocumentsCommandHandler, logger *slog.Logger) *DocumentBackfillJob {
	return &DocumentBackfillJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "document_backfill_job"),
	}
}

// Start begins the document backfill job to run every minute.
func (j *DocumentBackfillJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewBackfillDocumentsCommand(backfillBatchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Document backfill command invalid", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Document backfill job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Document backfill job started (running every minute)")
	return nil
}

// Stop stops the document backfill job.
func (j *DocumentBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Document backfill job stopped")
}
