// Package orderrepo maps order aggregates to the orders and order_lines tables.
// Line snapshots are stored as child rows and read back only with their order.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyIndex is the unique index guarding duplicate checkouts.
const IdempotencyKeyIndex = "ux_orders_idempotency_key"

// OrderDTO represents the orders table. Customer fields are flattened into
// columns; lines live in order_lines.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerName    string          `gorm:"not null"`
	CustomerPhone   string          `gorm:"not null"`
	CustomerAddress string          `gorm:"not null"`
	CustomerEmail   string          `gorm:"not null;default:''"`
	ZoneID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	Notes           string          `gorm:"type:text;not null;default:''"`
	IdempotencyKey  *string         `gorm:"type:varchar(255);uniqueIndex:ux_orders_idempotency_key"`
	CreatedAt       time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
	Lines           []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one product snapshot of an order.
type OrderLineDTO struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"not null"`
	ProductPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity     int             `gorm:"not null"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	c := o.Customer()

	var key *string
	if k := o.IdempotencyKey(); k != "" {
		key = &k
	}

	lines := o.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for i, l := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			OrderID:      o.ID().Bytes(),
			Position:     i,
			ProductID:    l.ProductID().Bytes(),
			ProductName:  l.ProductName(),
			ProductPrice: l.UnitPrice().Amount(),
			Quantity:     l.Quantity(),
			Subtotal:     l.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerName:    c.Name(),
		CustomerPhone:   c.Phone(),
		CustomerAddress: c.Address(),
		CustomerEmail:   c.Email(),
		ZoneID:          o.ZoneID().Bytes(),
		DeliveryFee:     o.DeliveryFee().Amount(),
		TotalAmount:     o.Total().Amount(),
		Status:          o.Status().String(),
		Notes:           o.Notes(),
		IdempotencyKey:  key,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Lines:           lineDTOs,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. dto.Lines must already be
// sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone, dto.CustomerAddress, dto.CustomerEmail)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var key string
	if dto.IdempotencyKey != nil {
		key = *dto.IdempotencyKey
	}

	return order.RestoreOrder(order.State{
		ID:             id,
		Customer:       customer,
		Lines:          lines,
		ZoneID:         zoneID,
		DeliveryFee:    fee,
		Total:          total,
		Status:         status,
		Notes:          dto.Notes,
		IdempotencyKey: key,
		CreatedAt:      dto.CreatedAt.UTC(),
		UpdatedAt:      dto.UpdatedAt.UTC(),
	})
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Line{}, err
	}

	price, err := kernel.NewMoney(dto.ProductPrice)
	if err != nil {
		return order.Line{}, err
	}

	return order.NewLine(productID, dto.ProductName, price, dto.Quantity)
}
