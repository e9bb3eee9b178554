// Package outbox holds domain events waiting to be delivered to the broker.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Message is one serialized domain event. It is written in the transaction
// that produced the event and delivered at least once afterwards.
type Message struct {
	ID          kernel.UUID
	EventType   string
	AggregateID string
	Payload     []byte
	OccurredAt  time.Time
}

func NewMessage(event order.DomainEvent) (Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}

	return Message{
		ID:          kernel.NewUUID(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}
