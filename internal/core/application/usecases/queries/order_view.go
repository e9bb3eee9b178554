package queries

import (
	"context"
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order as operators and clients see it.
type OrderView struct {
	ID          kernel.UUID
	Customer    CustomerView
	Items       []OrderLineView
	ZoneID      kernel.UUID
	DeliveryFee decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CustomerView struct {
	Name    string
	Phone   string
	Address string
	Email   string
}

type OrderLineView struct {
	ProductID    kernel.UUID
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
	Subtotal     decimal.Decimal
}

// OrderViewOf renders an aggregate returned by a command the same way the
// queries render stored orders.
func OrderViewOf(o *order.Order) OrderView {
	lines := o.Lines()
	items := make([]OrderLineView, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderLineView{
			ProductID:    l.ProductID(),
			ProductName:  l.ProductName(),
			ProductPrice: l.UnitPrice().Amount(),
			Quantity:     l.Quantity(),
			Subtotal:     l.Subtotal().Amount(),
		})
	}

	c := o.Customer()
	return OrderView{
		ID:          o.ID(),
		Customer:    CustomerView{Name: c.Name(), Phone: c.Phone(), Address: c.Address(), Email: c.Email()},
		Items:       items,
		ZoneID:      o.ZoneID(),
		DeliveryFee: o.DeliveryFee().Amount(),
		TotalAmount: o.Total().Amount(),
		Status:      o.Status().String(),
		Notes:       o.Notes(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

const orderColumns = `
	id,
	customer_name,
	customer_phone,
	customer_address,
	customer_email,
	zone_id,
	delivery_fee,
	total_amount,
	status,
	notes,
	created_at,
	updated_at`

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)
	for rows.Next() {
		var v OrderView
		var id, zoneID uuid.UUID

		if err := rows.Scan(
			&id,
			&v.Customer.Name,
			&v.Customer.Phone,
			&v.Customer.Address,
			&v.Customer.Email,
			&zoneID,
			&v.DeliveryFee,
			&v.TotalAmount,
			&v.Status,
			&v.Notes,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}

		var err error
		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.ZoneID, err = kernel.UUIDFromBytes(zoneID[:]); err != nil {
			return nil, err
		}
		v.Items = make([]OrderLineView, 0)
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// attachLines loads line snapshots for views in one round trip.
func attachLines(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	byID := make(map[uuid.UUID]int, len(views))
	for i, v := range views {
		ids = append(ids, v.ID.Bytes())
		byID[v.ID.Bytes()] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			product_name,
			product_price,
			quantity,
			subtotal
		FROM order_lines
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLineView
		var orderID, productID uuid.UUID

		if err = rows.Scan(
			&orderID,
			&productID,
			&line.ProductName,
			&line.ProductPrice,
			&line.Quantity,
			&line.Subtotal,
		); err != nil {
			return err
		}

		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}

		i := byID[orderID]
		views[i].Items = append(views[i].Items, line)
	}

	return rows.Err()
}
