package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const relayRunTimeout = 10 * time.Second

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending domain events to the broker.
// Runs every second; a run still in progress makes the next tick a no-op.
type OutboxRelayJob struct {
	handler outboxRelayer
	cmd     commands.RelayOutboxCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxRelayJob creates a job relaying up to batchSize messages per run.
func NewOutboxRelayJob(handler outboxRelayer, batchSize int, logger *slog.Logger) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}

	return &OutboxRelayJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "outbox_relay_job"),
	}, nil
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc("* * * * * *", j.runScheduled); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops scheduling and waits for a run in progress to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RunOnce relays one batch and reports how many messages were published.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) (int, error) {
	published, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		// The batch stays pending and is retried on the next tick.
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return published, err
	}

	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
	return published, nil
}

func (j *OutboxRelayJob) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), relayRunTimeout)
	defer cancel()

	_, _ = j.RunOnce(ctx)
}
