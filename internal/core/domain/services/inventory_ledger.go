package services

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// InventoryLedger applies reservations to products the caller has locked.
// Serialization comes from the caller holding the product row locks; the
// ledger guarantees all-or-nothing over the products it is handed.
type InventoryLedger struct{}

func NewInventoryLedger() InventoryLedger {
	return InventoryLedger{}
}

// Reserve decrements every line's product or none of them. The first product
// short of stock, in line order, is reported as a ConflictError wrapping
// catalog.ErrInsufficientStock.
func (l InventoryLedger) Reserve(products []*catalog.Product, lines []order.Line) error {
	byID := indexProducts(products)
	demand := sumByProduct(lines)

	for _, id := range demandOrder(lines) {
		p, ok := byID[id]
		if !ok {
			return errs.NewObjectNotFoundError("product", id.String())
		}
		if !p.CanReserve(demand[id]) {
			return errs.NewConflictErrorWithCause("product", id.String(), catalog.ErrInsufficientStock)
		}
	}

	for _, id := range demandOrder(lines) {
		if err := byID[id].Reserve(demand[id]); err != nil {
			return err
		}
	}

	return nil
}

// Release puts every line's quantity back. Products missing from the catalog
// are skipped; release never fails for lack of a product.
func (l InventoryLedger) Release(products []*catalog.Product, lines []order.Line) error {
	byID := indexProducts(products)
	demand := sumByProduct(lines)

	for _, id := range demandOrder(lines) {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if err := p.Release(demand[id]); err != nil {
			return err
		}
	}

	return nil
}

func sumByProduct(lines []order.Line) map[kernel.UUID]int {
	demand := make(map[kernel.UUID]int, len(lines))
	for _, line := range lines {
		demand[line.ProductID()] += line.Quantity()
	}
	return demand
}

func demandOrder(lines []order.Line) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID()]; ok {
			continue
		}
		seen[line.ProductID()] = struct{}{}
		ids = append(ids, line.ProductID())
	}
	return ids
}
