package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// MaxIdempotencyKeyLength matches the width of the orders.idempotency_key column.
const MaxIdempotencyKeyLength = 255

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("customer info")
)

// AcceptedQuote is the delivery offer the client saw from check-delivery and
// re-submits unchanged at checkout.
type AcceptedQuote struct {
	ZoneID kernel.UUID
	Fee    kernel.Money
}

// CreateOrderCommand represents a checkout: who orders, what, and at which
// delivery price.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ann", "+100200300", "Riverside, 12 Elm St", "")
//	cmd, err := NewCreateOrderCommand(
//	    customer,
//	    []services.CartItem{{ProductID: breadID, Quantity: 2}},
//	    AcceptedQuote{ZoneID: zoneID, Fee: kernel.MustMoney("5.00")},
//	    "ring twice",
//	    idempotencyKey,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer       order.Customer
	items          []services.CartItem
	quote          AcceptedQuote
	notes          string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. Cart items are checked
// for shape only; prices and availability come from the catalog in Handle.
func NewCreateOrderCommand(
	customer order.Customer,
	items []services.CartItem,
	quote AcceptedQuote,
	notes string,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomer(customer),
		command.setItems(items),
		command.setQuote(quote),
		command.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the cart as submitted, duplicates included.
func (c CreateOrderCommand) Items() []services.CartItem {
	return append([]services.CartItem(nil), c.items...)
}

func (c CreateOrderCommand) Quote() AcceptedQuote {
	return c.quote
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// IdempotencyKey is empty when the client did not send one.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if customer.Name() == "" || customer.Address() == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.CartItem) error {
	if _, err := services.NewCartConsolidator().Merge(items); err != nil {
		return err
	}

	c.items = append([]services.CartItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setQuote(quote AcceptedQuote) error {
	if err := quote.ZoneID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("zoneId", err)
	}

	c.quote = quote
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > MaxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 1, MaxIdempotencyKeyLength)
	}

	c.idempotencyKey = key
	return nil
}
