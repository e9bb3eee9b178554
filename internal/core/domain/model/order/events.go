package order

import "time"

const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// DomainEvent is recorded by the Order aggregate and written to the outbox in
// the same transaction as the change it describes.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

type PlacedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderPlaced struct {
	OrderID     string       `json:"order_id"`
	ZoneID      string       `json:"zone_id"`
	DeliveryFee string       `json:"delivery_fee"`
	TotalAmount string       `json:"total_amount"`
	Items       []PlacedItem `json:"items"`
	At          time.Time    `json:"occurred_at"`
}

func (e OrderPlaced) EventType() string { return EventTypeOrderPlaced }
func (e OrderPlaced) AggregateID() string { return e.OrderID }
func (e OrderPlaced) OccurredAt() time.Time { return e.At }

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	At        time.Time `json:"occurred_at"`
}

func (e OrderStatusChanged) EventType() string { return EventTypeOrderStatusChanged }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }
func (e OrderStatusChanged) OccurredAt() time.Time { return e.At }
