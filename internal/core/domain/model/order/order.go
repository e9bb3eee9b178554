package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrOrderHasNoLines       = errs.NewValueIsRequiredError("order lines")

	// ErrDuplicateIdempotencyKey is the cause of the conflict raised when an
	// idempotency key was already used by another order.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
)

// Order is the aggregate root for a placed purchase.
//
// Invariants:
//   - lines are non-empty snapshots taken at creation
//   - total equals the sum of line subtotals plus the delivery fee
//   - customer, lines, fee and total never change after creation
//   - status only moves through Transition
type Order struct {
	id             kernel.UUID
	customer       Customer
	lines          []Line
	zoneID         kernel.UUID
	deliveryFee    kernel.Money
	total          kernel.Money
	status         Status
	notes          string
	idempotencyKey string
	createdAt      time.Time
	updatedAt      time.Time

	events []DomainEvent

	isConstructed bool
}

// NewOrder places an order in Pending and records OrderPlaced.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	lines []Line,
	zoneID kernel.UUID,
	deliveryFee kernel.Money,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		customer:      customer,
		deliveryFee:   deliveryFee,
		status:        Pending,
		notes:         strings.TrimSpace(notes),
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setZoneID(zoneID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.total = computeTotal(o.lines, o.deliveryFee)
	o.record(o.placedEvent())

	return o, nil
}

// State carries every persisted field of an Order.
type State struct {
	ID             kernel.UUID
	Customer       Customer
	Lines          []Line
	ZoneID         kernel.UUID
	DeliveryFee    kernel.Money
	Total          kernel.Money
	Status         Status
	Notes          string
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreOrder rebuilds an order from persistence. The stored total is kept
// as recorded; it is not recomputed.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		customer:       s.Customer,
		deliveryFee:    s.DeliveryFee,
		total:          s.Total,
		notes:          s.Notes,
		idempotencyKey: s.IdempotencyKey,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setZoneID(s.ZoneID),
		o.setLines(s.Lines),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) Customer() Customer { return o.customer }

// Lines returns a copy of the line snapshots in placement order.
func (o *Order) Lines() []Line { return slices.Clone(o.lines) }

func (o *Order) ZoneID() kernel.UUID { return o.zoneID }

func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

func (o *Order) Total() kernel.Money { return o.total }

func (o *Order) Status() Status { return o.status }

func (o *Order) Notes() string { return o.notes }

func (o *Order) IdempotencyKey() string { return o.idempotencyKey }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AttachIdempotencyKey binds the client's retry token to a freshly placed order.
func (o *Order) AttachIdempotencyKey(key string) {
	o.idempotencyKey = strings.TrimSpace(key)
}

// ChangeStatus applies Transition and records OrderStatusChanged. On error the
// order is left untouched.
func (o *Order) ChangeStatus(requested Status, changedBy string, at time.Time) error {
	next, err := Transition(o.status, requested)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	o.updatedAt = at
	o.record(OrderStatusChanged{
		OrderID:   o.id.String(),
		From:      previous.String(),
		To:        next.String(),
		ChangedBy: changedBy,
		At:        at,
	})

	return nil
}

// DomainEvents returns events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) record(e DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) placedEvent() OrderPlaced {
	items := make([]PlacedItem, 0, len(o.lines))
	for _, l := range o.lines {
		items = append(items, PlacedItem{ProductID: l.ProductID().String(), Quantity: l.Quantity()})
	}
	return OrderPlaced{
		OrderID:     o.id.String(),
		ZoneID:      o.zoneID.String(),
		DeliveryFee: o.deliveryFee.String(),
		TotalAmount: o.total.String(),
		Items:       items,
		At:          o.createdAt,
	}
}

func computeTotal(lines []Line, fee kernel.Money) kernel.Money {
	total := fee
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setZoneID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("zone id", err)
	}
	o.zoneID = id
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	o.lines = slices.Clone(lines)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
