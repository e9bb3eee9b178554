package services

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// MaxLineQuantity bounds a merged line.
const MaxLineQuantity = 1000

var ErrEmptyCart = errs.NewValueIsRequiredError("cart items")

// CartItem is one client-submitted (product, quantity) pair. Client prices are
// never accepted.
type CartItem struct {
	ProductID kernel.UUID
	Quantity  int
}

type CartConsolidator struct{}

func NewCartConsolidator() CartConsolidator {
	return CartConsolidator{}
}

// Merge sums duplicate products, keeping the order of first occurrence.
func (c CartConsolidator) Merge(raw []CartItem) ([]CartItem, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCart
	}

	merged := make([]CartItem, 0, len(raw))
	position := make(map[kernel.UUID]int, len(raw))

	for _, item := range raw {
		if err := item.ProductID.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("product id", err)
		}
		if item.Quantity <= 0 {
			return nil, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, MaxLineQuantity)
		}

		if i, ok := position[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
		} else {
			position[item.ProductID] = len(merged)
			merged = append(merged, item)
		}
	}

	for _, item := range merged {
		if item.Quantity > MaxLineQuantity {
			return nil, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, MaxLineQuantity)
		}
	}

	return merged, nil
}

// Consolidate merges raw and prices every line from the catalog products
// supplied by the caller.
func (c CartConsolidator) Consolidate(raw []CartItem, products []*catalog.Product) ([]order.Line, error) {
	merged, err := c.Merge(raw)
	if err != nil {
		return nil, err
	}

	byID := indexProducts(products)
	lines := make([]order.Line, 0, len(merged))

	for _, item := range merged {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", item.ProductID.String())
		}
		if !p.IsActive() {
			return nil, errs.NewObjectNotFoundErrorWithCause("product", item.ProductID.String(), catalog.ErrProductInactive)
		}

		line, lineErr := order.NewLine(p.ID(), p.Name(), p.Price(), item.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// ProductIDs returns the distinct product ids of raw in lock order.
func ProductIDs(raw []CartItem) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, item := range raw {
		ids = append(ids, item.ProductID)
	}
	return kernel.SortedUnique(ids)
}

func indexProducts(products []*catalog.Product) map[kernel.UUID]*catalog.Product {
	byID := make(map[kernel.UUID]*catalog.Product, len(products))
	for _, p := range products {
		if p != nil {
			byID[p.ID()] = p
		}
	}
	return byID
}
