// Package broker delivers outbox messages to Kafka.
package broker

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventType = "event_type"
	HeaderMessageID = "message_id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes synchronously and waits for every in-sync replica,
// so a nil error means the batch is durable and may be marked published.
// Messages are keyed by aggregate id, which keeps one order's events on one
// partition and therefore in order.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, messages []outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: HeaderEventType, Value: []byte(m.EventType)},
				{Key: HeaderMessageID, Value: []byte(m.ID.String())},
			},
		})
	}

	if err := p.w.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publish %d outbox messages: %w", len(batch), err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)
