package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrSetOrderStatusCommandIsNotConstructed = errors.New(
		"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
	)
	ErrOperatorIsRequired = errs.NewAuthorizationError("operator principal is required")
)

// SetOrderStatusCommand is an operator moving an order through fulfillment.
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	requested order.Status
	principal ports.Principal

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(
	orderID kernel.UUID,
	requested order.Status,
	principal ports.Principal,
) (SetOrderStatusCommand, error) {
	command := SetOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setPrincipal(principal); err != nil {
		return SetOrderStatusCommand{}, err
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRequested(requested),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return command, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetOrderStatusCommand) Requested() order.Status {
	return c.requested
}

func (c SetOrderStatusCommand) Principal() ports.Principal {
	return c.principal
}

func (c *SetOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderStatusCommand) setRequested(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.requested = status
	return nil
}

func (c *SetOrderStatusCommand) setPrincipal(principal ports.Principal) error {
	if principal.Subject == "" {
		return ErrOperatorIsRequired
	}

	c.principal = principal
	return nil
}
