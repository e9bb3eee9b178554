package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(relayHandler outboxRelayer, outboxBatchSize int, logger *slog.Logger) (*JobManager, error) {
	relayJob, err := NewOutboxRelayJob(relayHandler, outboxBatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox relay job: %w", err)
	}

	return &JobManager{outboxRelayJob: relayJob}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
