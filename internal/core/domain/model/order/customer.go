package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"storefront/internal/pkg/errs"
)

// Customer is the contact and delivery information captured with an order.
type Customer struct {
	name    string
	phone   string
	address string
	email   string
}

func NewCustomer(name, phone, address, email string) (Customer, error) {
	c := Customer{}

	if err := errors.Join(
		c.setName(name),
		c.setPhone(phone),
		c.setAddress(address),
		c.setEmail(email),
	); err != nil {
		return Customer{}, err
	}

	return c, nil
}

func (c Customer) Name() string { return c.name }
func (c Customer) Phone() string { return c.phone }
func (c Customer) Address() string { return c.address }

// Email is empty when the customer did not give one.
func (c Customer) Email() string { return c.email }

func (c *Customer) setName(name string) error {
	if c.name = strings.TrimSpace(name); c.name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if c.phone = strings.TrimSpace(phone); c.phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	return nil
}

func (c *Customer) setAddress(address string) error {
	if c.address = strings.TrimSpace(address); c.address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer email", fmt.Errorf("%q: %w", email, err))
	}
	c.email = email
	return nil
}
