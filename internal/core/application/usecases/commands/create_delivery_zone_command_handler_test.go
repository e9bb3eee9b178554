package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDeliveryZoneCommand(t *testing.T) {
	cmd, err := commands.NewCreateDeliveryZoneCommand("Riverside", " River ", kernel.MustMoney("5"))
	require.NoError(t, err)
	assert.Equal(t, "Riverside", cmd.MatchKey())
	assert.Equal(t, "River", cmd.Name())
	assert.Equal(t, "5.00", cmd.Fee().String())

	_, err = commands.NewCreateDeliveryZoneCommand("   ", "", kernel.MustMoney("5"))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateDeliveryZoneCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDeliveryZoneCommand("  Old   Town ", "", kernel.MustMoney("7.5"))
	require.NoError(t, err)

	zoneRepo := new(MockZoneRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("Add", ctx, mock.AnythingOfType("*zone.DeliveryZone")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockZoneUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateDeliveryZoneCommandHandler(factory, clock.NewFixed(placedAt))
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "old town", created.MatchKey())
	assert.True(t, created.IsActive())
	assert.Equal(t, "7.50", created.Fee().String())
	assert.Equal(t, placedAt, created.CreatedAt())
	uow.AssertExpectations(t)
	zoneRepo.AssertExpectations(t)
}

func TestCreateDeliveryZoneCommandHandler_Handle_DuplicateKey(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDeliveryZoneCommand("Riverside", "", kernel.MustMoney("5"))
	require.NoError(t, err)
	duplicate := errs.NewConflictError("address key", "riverside")

	zoneRepo := new(MockZoneRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("Add", ctx, mock.AnythingOfType("*zone.DeliveryZone")).Return(duplicate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockZoneUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateDeliveryZoneCommandHandler(factory, clock.NewSystem())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryZoneCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDeliveryZoneCommand("Riverside", "", kernel.MustMoney("5"))
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockZoneUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateDeliveryZoneCommandHandler(factory, clock.NewSystem())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertExpectations(t)
}
