// Package zonerepo persists delivery zones.
package zonerepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/zone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchKeyIndex keeps normalized zone keys unique.
const MatchKeyIndex = "ux_delivery_zones_match_key"

type DeliveryZoneDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MatchKey  string          `gorm:"not null;uniqueIndex:ux_delivery_zones_match_key"`
	Name      string          `gorm:"not null"`
	Fee       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsActive  bool            `gorm:"not null;default:true;index"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
}

func (DeliveryZoneDTO) TableName() string {
	return "delivery_zones"
}

func fromDomain(z *zone.DeliveryZone) DeliveryZoneDTO {
	return DeliveryZoneDTO{
		ID:        z.ID().Bytes(),
		MatchKey:  z.MatchKey(),
		Name:      z.Name(),
		Fee:       z.Fee().Amount(),
		IsActive:  z.IsActive(),
		CreatedAt: z.CreatedAt(),
	}
}

func toDomain(dto DeliveryZoneDTO) (*zone.DeliveryZone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoney(dto.Fee)
	if err != nil {
		return nil, err
	}

	return zone.RestoreDeliveryZone(id, dto.MatchKey, dto.Name, fee, dto.IsActive, dto.CreatedAt.UTC())
}
