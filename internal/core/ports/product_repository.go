package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository is the inventory side of the catalog: the ledger reads and
// writes product quantities through it.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, product *catalog.Product) error

	// Update persists a product's quantity and flags.
	Update(ctx context.Context, product *catalog.Product) error

	// Get retrieves a product by id or returns ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetForUpdate locks and returns the existing products among ids, in
	// ascending id order. Missing ids are simply absent from the result.
	// Must be called inside a transaction.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)
}
