package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/pkg/clock"
)

type CreateDeliveryZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
	clock      clock.Clock
}

func NewCreateDeliveryZoneCommandHandler(uowFactory ZoneUoWFactory, clk clock.Clock) CreateDeliveryZoneCommandHandler {
	return CreateDeliveryZoneCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle stores an active zone. A key that normalizes to an existing one is
// rejected by the repository as a ConflictError.
func (h *CreateDeliveryZoneCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryZoneCommand,
) (*zone.DeliveryZone, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := zone.NewDeliveryZone(kernel.NewUUID(), cmd.MatchKey(), cmd.Name(), cmd.Fee(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ZoneRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
