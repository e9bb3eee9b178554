package queries

import (
	"context"
	"database/sql"

	"storefront/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns orders by creation time, newest first. Ties are ordered by id
// so pages are stable.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	var err error
	if query.Status() == order.Unknown {
		rows, err = h.db.WithContext(ctx).Raw(`
			SELECT ` + orderColumns + `
			FROM orders
			ORDER BY created_at DESC, id
		`).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(`
			SELECT ` + orderColumns + `
			FROM orders
			WHERE status = ?
			ORDER BY created_at DESC, id
		`, query.Status().String()).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if err = attachLines(ctx, h.db, views); err != nil {
		return nil, err
	}

	return views, nil
}
