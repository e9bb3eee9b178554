package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Line is a product snapshot taken when the order was placed. It is never
// re-derived from the live catalog.
type Line struct {
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int
}

func NewLine(productID kernel.UUID, productName string, unitPrice kernel.Money, quantity int) (Line, error) {
	l := Line{unitPrice: unitPrice}

	if err := errors.Join(
		l.setProductID(productID),
		l.setProductName(productName),
		l.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return l, nil
}

func (l Line) ProductID() kernel.UUID { return l.productID }
func (l Line) ProductName() string { return l.productName }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l Line) Quantity() int { return l.quantity }

// Subtotal is unit price times quantity.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

func (l *Line) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.productID = id
	return nil
}

func (l *Line) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	l.productName = name
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	l.quantity = quantity
	return nil
}
