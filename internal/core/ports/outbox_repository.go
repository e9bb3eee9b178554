package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"
)

// OutboxRepository stores domain events until they are published.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...outbox.Message) error

	// FetchPending locks up to limit unpublished messages, oldest first,
	// skipping rows another relay already holds.
	FetchPending(ctx context.Context, limit int) ([]outbox.Message, error)

	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages []outbox.Message) error
}
