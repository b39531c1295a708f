package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	documentBackfillJob *DocumentBackfillJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	backfillHandler commands.BackfillDocumentsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		documentBackfillJob: NewDocumentBackfillJob(backfillHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.documentBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start document backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.documentBackfillJob.Stop()
}
