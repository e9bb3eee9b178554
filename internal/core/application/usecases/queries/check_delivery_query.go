// Package queries contains read operations. Handlers read through repositories
// when domain rules apply to the answer and straight from the tables otherwise.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/zone"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCheckDeliveryQueryIsNotConstructed = errors.New(
	"CheckDeliveryQuery must be created via NewCheckDeliveryQuery constructor",
)

// CheckDeliveryQuery asks whether an address is served and at what fee.
//
// Example:
//
//	query, err := NewCheckDeliveryQuery("Riverside, 12 Elm St")
//	if err != nil {
//	    return err
//	}
//
//	quote, err := handler.Handle(ctx, query)
//	if quote.Available {
//	    fmt.Printf("delivery to %s costs %s\n", quote.ZoneName, quote.Fee)
//	}
type CheckDeliveryQuery struct {
	address string

	guard guard.ConstructorGuard
}

func NewCheckDeliveryQuery(address string) (CheckDeliveryQuery, error) {
	if zone.NormalizeAddress(address) == "" {
		return CheckDeliveryQuery{}, errs.NewValueIsRequiredError("address")
	}

	return CheckDeliveryQuery{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (q CheckDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrCheckDeliveryQueryIsNotConstructed)
}

func (q CheckDeliveryQuery) Address() string {
	return q.address
}
