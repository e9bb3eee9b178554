package zonerepo

import (
	"context"

	"storefront/internal/adapters/out/postgres/pgerrors"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormZoneRepository struct {
	db *gorm.DB
}

func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// Add saves a new zone. Keys are stored normalized, so "Riverside" and
// " riverside " collide.
func (r *GormZoneRepository) Add(ctx context.Context, z *zone.DeliveryZone) error {
	if err := z.Validate(); err != nil {
		return err
	}

	dto := fromDomain(z)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err, MatchKeyIndex) {
			return errs.NewConflictError("address key", z.MatchKey())
		}
		return err
	}

	return nil
}

// ListActive returns active zones ordered by key.
func (r *GormZoneRepository) ListActive(ctx context.Context) ([]*zone.DeliveryZone, error) {
	var dtos []DeliveryZoneDTO
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("match_key").Find(&dtos).Error; err != nil {
		return nil, err
	}

	zones := make([]*zone.DeliveryZone, 0, len(dtos))
	for _, dto := range dtos {
		z, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	return zones, nil
}
