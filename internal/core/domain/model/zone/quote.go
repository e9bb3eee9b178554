package zone

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
)

// ErrDeliveryQuoteStale means the quote a client accepted no longer matches
// what the current zones would offer for its address.
var ErrDeliveryQuoteStale = errors.New("delivery quote is stale")

// Quote is the delivery answer for one address. A client re-submits ZoneID
// and Fee unchanged when placing the order.
type Quote struct {
	Available bool
	ZoneID    kernel.UUID
	ZoneName  string
	Fee       kernel.Money
	Message   string
}

// IsSameOffer reports whether other names the same zone at the same fee.
func (q Quote) IsSameOffer(zoneID kernel.UUID, fee kernel.Money) bool {
	return q.Available && q.ZoneID.IsEqual(zoneID) && q.Fee.IsEqual(fee)
}
