package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/zone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DeliveryZoneView struct {
	ID        kernel.UUID
	MatchKey  string
	Name      string
	Fee       decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
}

func DeliveryZoneViewOf(z *zone.DeliveryZone) DeliveryZoneView {
	return DeliveryZoneView{
		ID:        z.ID(),
		MatchKey:  z.MatchKey(),
		Name:      z.Name(),
		Fee:       z.Fee().Amount(),
		IsActive:  z.IsActive(),
		CreatedAt: z.CreatedAt(),
	}
}

type ListDeliveryZonesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveryZonesQueryHandler(db *gorm.DB) ListDeliveryZonesQueryHandler {
	return ListDeliveryZonesQueryHandler{db: db}
}

// Handle lists zones ordered by match key.
func (h ListDeliveryZonesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveryZonesQuery,
) ([]DeliveryZoneView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("delivery_zones").
		Select("id, match_key, name, fee, is_active, created_at").
		Order("match_key")
	if query.ActiveOnly() {
		tx = tx.Where("is_active = ?", true)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := make([]DeliveryZoneView, 0)
	for rows.Next() {
		var v DeliveryZoneView
		var id uuid.UUID

		if err = rows.Scan(&id, &v.MatchKey, &v.Name, &v.Fee, &v.IsActive, &v.CreatedAt); err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		zones = append(zones, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}
