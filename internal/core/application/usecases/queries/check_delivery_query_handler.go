package queries

import (
	"context"

	"storefront/internal/core/domain/model/zone"
	"storefront/internal/core/domain/services"
)

// ZoneReader is the part of the zone repository a delivery check needs.
type ZoneReader interface {
	ListActive(ctx context.Context) ([]*zone.DeliveryZone, error)
}

// CheckDeliveryQueryHandler quotes delivery for an address. It has no side
// effects, so clients may call it on every address edit.
type CheckDeliveryQueryHandler struct {
	zones    ZoneReader
	resolver services.DeliveryZoneResolver
}

func NewCheckDeliveryQueryHandler(zones ZoneReader) CheckDeliveryQueryHandler {
	return CheckDeliveryQueryHandler{zones: zones, resolver: services.NewDeliveryZoneResolver()}
}

func (h CheckDeliveryQueryHandler) Handle(ctx context.Context, query CheckDeliveryQuery) (zone.Quote, error) {
	if err := query.Validate(); err != nil {
		return zone.Quote{}, err
	}

	active, err := h.zones.ListActive(ctx)
	if err != nil {
		return zone.Quote{}, err
	}

	return h.resolver.Resolve(query.Address(), active)
}
