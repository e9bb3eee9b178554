// Package outboxrepo stores domain events in outbox_messages until the relay
// publishes them.
package outboxrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	AggregateID string     `gorm:"type:varchar(64);not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m outbox.Message) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID.Bytes(),
		EventType:   m.EventType,
		AggregateID: m.AggregateID,
		Payload:     m.Payload,
		OccurredAt:  m.OccurredAt,
	}
}

func toDomain(dto OutboxMessageDTO) (outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return outbox.Message{}, err
	}

	return outbox.Message{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: dto.AggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt.UTC(),
	}, nil
}
