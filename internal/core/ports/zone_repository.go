package ports

import (
	"context"

	"storefront/internal/core/domain/model/zone"
)

type ZoneRepository interface {
	// Add persists a zone. A duplicate match key is reported as a ConflictError.
	Add(ctx context.Context, z *zone.DeliveryZone) error

	// ListActive returns every active zone.
	ListActive(ctx context.Context) ([]*zone.DeliveryZone, error)
}
