package catalog

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrProductInactive         = errors.New("product is inactive")
)

// Product is the catalog entry an order line is priced from. Its available
// quantity is only changed through Reserve and Release, which the inventory
// ledger calls while holding the product's row lock.
type Product struct {
	id          kernel.UUID
	name        string
	description string
	category    string
	imageURL    string
	price       kernel.Money
	quantity    int
	active      bool
	createdAt   time.Time

	isConstructed bool
}

// State carries every persisted field of a Product.
type State struct {
	ID          kernel.UUID
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       kernel.Money
	Quantity    int
	Active      bool
	CreatedAt   time.Time
}

// NewProduct creates an active product.
func NewProduct(id kernel.UUID, name string, price kernel.Money, quantity int, createdAt time.Time) (*Product, error) {
	return RestoreProduct(State{
		ID:        id,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		Active:    true,
		CreatedAt: createdAt,
	})
}

// RestoreProduct rebuilds a product from persistence, re-checking invariants.
func RestoreProduct(s State) (*Product, error) {
	p := &Product{
		description:   s.Description,
		category:      s.Category,
		imageURL:      s.ImageURL,
		price:         s.Price,
		active:        s.Active,
		createdAt:     s.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setName(s.Name),
		p.setQuantity(s.Quantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) Category() string { return p.category }
func (p *Product) ImageURL() string { return p.imageURL }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) Quantity() int { return p.quantity }
func (p *Product) IsActive() bool { return p.active }
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// Describe sets the presentational fields.
func (p *Product) Describe(description, category, imageURL string) {
	p.description = strings.TrimSpace(description)
	p.category = strings.TrimSpace(category)
	p.imageURL = strings.TrimSpace(imageURL)
}

func (p *Product) Deactivate() { p.active = false }

// CanReserve reports whether qty units are available.
func (p *Product) CanReserve(qty int) bool {
	return qty > 0 && qty <= p.quantity
}

// Reserve takes qty units out of the available quantity.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, p.quantity)
	}
	if qty > p.quantity {
		return errs.NewConflictErrorWithCause("product", p.id.String(), ErrInsufficientStock)
	}
	p.quantity -= qty
	return nil
}

// Release puts qty units back.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}
	p.quantity += qty
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	p.quantity = quantity
	return nil
}
