package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrListDeliveryZonesQueryIsNotConstructed = errors.New(
	"ListDeliveryZonesQuery must be created via NewListDeliveryZonesQuery constructor",
)

type ListDeliveryZonesQuery struct {
	activeOnly bool

	guard guard.ConstructorGuard
}

func NewListDeliveryZonesQuery(activeOnly bool) ListDeliveryZonesQuery {
	return ListDeliveryZonesQuery{activeOnly: activeOnly, guard: guard.NewConstructorGuard()}
}

func (q ListDeliveryZonesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveryZonesQueryIsNotConstructed)
}

func (q ListDeliveryZonesQuery) ActiveOnly() bool {
	return q.activeOnly
}
