package broker

import (
	"context"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return newKafkaPublisher(w)
}
