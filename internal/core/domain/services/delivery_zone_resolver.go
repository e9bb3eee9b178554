package services

import (
	"cmp"
	"fmt"
	"slices"

	"storefront/internal/core/domain/model/zone"
	"storefront/internal/pkg/errs"
)

const MessageDeliveryUnavailable = "delivery is not available for this address"

// DeliveryZoneResolver maps a free-text address onto the zone that prices its
// delivery. It is a pure function of the zones it is given.
type DeliveryZoneResolver struct{}

func NewDeliveryZoneResolver() DeliveryZoneResolver {
	return DeliveryZoneResolver{}
}

// Resolve tests active zones longest key first, ties broken by zone id, and
// returns the first match. An address no zone matches yields an unavailable
// quote, not an error.
func (r DeliveryZoneResolver) Resolve(address string, zones []*zone.DeliveryZone) (zone.Quote, error) {
	normalized := zone.NormalizeAddress(address)
	if normalized == "" {
		return zone.Quote{}, errs.NewValueIsRequiredError("address")
	}

	candidates := make([]*zone.DeliveryZone, 0, len(zones))
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return zone.Quote{}, err
		}
		if z.IsActive() {
			candidates = append(candidates, z)
		}
	}

	slices.SortFunc(candidates, func(a, b *zone.DeliveryZone) int {
		if c := cmp.Compare(len(b.MatchKey()), len(a.MatchKey())); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})

	for _, z := range candidates {
		if z.Matches(normalized) {
			return zone.Quote{
				Available: true,
				ZoneID:    z.ID(),
				ZoneName:  z.Name(),
				Fee:       z.Fee(),
				Message:   fmt.Sprintf("delivery to %s costs %s", z.Name(), z.Fee()),
			}, nil
		}
	}

	return zone.Quote{Message: MessageDeliveryUnavailable}, nil
}
