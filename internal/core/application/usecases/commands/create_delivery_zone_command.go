package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateDeliveryZoneCommandIsNotConstructed = errors.New(
	"CreateDeliveryZoneCommand must be created via NewCreateDeliveryZoneCommand constructor",
)

// CreateDeliveryZoneCommand registers a new served address prefix and its fee.
type CreateDeliveryZoneCommand struct { //nolint:recvcheck //using for validation
	matchKey string
	name     string
	fee      kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateDeliveryZoneCommand(matchKey, name string, fee kernel.Money) (CreateDeliveryZoneCommand, error) {
	command := CreateDeliveryZoneCommand{
		name:  strings.TrimSpace(name),
		fee:   fee,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMatchKey(matchKey); err != nil {
		return CreateDeliveryZoneCommand{}, err
	}

	return command, nil
}

func (c CreateDeliveryZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryZoneCommandIsNotConstructed)
}

func (c CreateDeliveryZoneCommand) MatchKey() string { return c.matchKey }
func (c CreateDeliveryZoneCommand) Name() string { return c.name }
func (c CreateDeliveryZoneCommand) Fee() kernel.Money { return c.fee }

func (c *CreateDeliveryZoneCommand) setMatchKey(key string) error {
	if zone.NormalizeAddress(key) == "" {
		return errs.NewValueIsRequiredError("address key")
	}

	c.matchKey = key
	return nil
}
