package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Line snapshots are stored with the order and never re-joined to products.
type OrderRepository interface {
	// Add persists a new order with its lines.
	// A duplicate idempotency key is reported as a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an order: status and updated timestamp.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get holding the order's row lock until the transaction ends.
	// Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIdempotencyKey retrieves the order placed with key or returns ObjectNotFoundError.
	GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error)
}
