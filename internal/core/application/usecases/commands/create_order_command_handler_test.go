package commands_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	bread     *catalog.Product
	riverside *zone.DeliveryZone
	zones     []*zone.DeliveryZone
}

func newCheckoutFixture(t *testing.T, stock int) checkoutFixture {
	t.Helper()
	bread, err := catalog.NewProduct(kernel.NewUUID(), "Bread", kernel.MustMoney("10.00"), stock, placedAt)
	require.NoError(t, err)
	riverside, err := zone.NewDeliveryZone(kernel.NewUUID(), "Riverside", "", kernel.MustMoney("5.00"), placedAt)
	require.NoError(t, err)
	return checkoutFixture{bread: bread, riverside: riverside, zones: []*zone.DeliveryZone{riverside}}
}

func (f checkoutFixture) command(t *testing.T, qty int, fee, key string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		validCustomer(t),
		[]services.CartItem{{ProductID: f.bread.ID(), Quantity: qty}},
		commands.AcceptedQuote{ZoneID: f.riverside.ID(), Fee: kernel.MustMoney(fee)},
		"",
		key,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "")

	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{f.bread}, nil).Once(),
		productRepo.On("Update", ctx, f.bread).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))

	// Act
	placed, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Pending, placed.Status())
	assert.Equal(t, "15.00", placed.Total().String())
	assert.Equal(t, "5.00", placed.DeliveryFee().String())
	assert.Equal(t, f.riverside.ID(), placed.ZoneID())
	assert.Equal(t, placedAt, placed.CreatedAt())
	assert.Equal(t, 0, f.bread.Quantity())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	zoneRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewSystem())

	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StaleQuote(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "4.00", "")

	zoneRepo := new(MockZoneRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, zone.ErrDeliveryQuoteStale)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, 1, f.bread.Quantity())
	uow.AssertExpectations(t)
	zoneRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ZoneDeactivated(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "")

	zoneRepo := new(MockZoneRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return([]*zone.DeliveryZone{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, zone.ErrDeliveryQuoteStale)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 2, "5.00", "")

	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{f.bread}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, catalog.ErrInsufficientStock)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, f.bread.ID().String(), conflict.ID)
	assert.Equal(t, 1, f.bread.Quantity())
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "")

	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "")
	expectedError := errors.New("insert failed")

	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{f.bread}, nil).Once(),
		productRepo.On("Update", ctx, f.bread).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(expectedError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, expectedError)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "")

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewSystem())
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ReplaysRememberedKey(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "retry-1")
	existing := placedOrder(t, order.Pending)

	store := new(MockIdempotencyStore)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		store.On("Recall", ctx, commands.IdempotencyScopeOrders, "retry-1").Return(existing.ID().String(), true, nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, store, clock.NewSystem())
	placed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, placed)
	assert.Equal(t, 1, f.bread.Quantity())
	store.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_RemembersNewKey(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "first-1")

	store := new(MockIdempotencyStore)
	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		store.On("Recall", ctx, commands.IdempotencyScopeOrders, "first-1").Return("", false, nil).Once(),
		store.On("TryLock", ctx, commands.IdempotencyScopeOrders, "first-1").Return(true, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "first-1").Return(noOrder, keyNotFound("first-1")).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{f.bread}, nil).Once(),
		productRepo.On("Update", ctx, f.bread).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		store.On("Remember", mock.Anything, commands.IdempotencyScopeOrders, "first-1", mock.AnythingOfType("string")).
			Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewCreateOrderCommandHandler(factory, store, clock.NewFixed(placedAt))
	placed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "first-1", placed.IdempotencyKey())
	store.AssertCalled(t, "Remember", mock.Anything, commands.IdempotencyScopeOrders, "first-1", placed.ID().String())
	store.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_KeyHeldByAnotherRequest(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "busy-1")

	store := new(MockIdempotencyStore)
	store.On("Recall", ctx, commands.IdempotencyScopeOrders, "busy-1").Return("", false, nil).Twice()
	store.On("TryLock", ctx, commands.IdempotencyScopeOrders, "busy-1").Return(false, nil).Once()
	factory := new(MockOrderUoWFactory)

	handler := commands.NewCreateOrderCommandHandler(factory, store, clock.NewSystem())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRequestInProgress)
	require.ErrorIs(t, err, errs.ErrConflict)
	store.AssertExpectations(t)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnlocksKeyOnFailure(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "9.99", "stale-1")

	store := new(MockIdempotencyStore)
	zoneRepo := new(MockZoneRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		store.On("Recall", ctx, commands.IdempotencyScopeOrders, "stale-1").Return("", false, nil).Once(),
		store.On("TryLock", ctx, commands.IdempotencyScopeOrders, "stale-1").Return(true, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "stale-1").Return(noOrder, keyNotFound("stale-1")).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		store.On("Unlock", mock.Anything, commands.IdempotencyScopeOrders, "stale-1").Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewCreateOrderCommandHandler(factory, store, clock.NewSystem())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, zone.ErrDeliveryQuoteStale)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Remember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateKeyInDatabase(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "dup-1")
	existing := placedOrder(t, order.Pending)
	duplicate := errs.NewConflictErrorWithCause("idempotency key", "dup-1", order.ErrDuplicateIdempotencyKey)

	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "dup-1").Return(noOrder, keyNotFound("dup-1")).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{f.bread}, nil).Once(),
		productRepo.On("Update", ctx, f.bread).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(duplicate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "dup-1").Return(existing, nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	placed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, placed)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RetryAfterLastUnitReturnsFirstOrder(t *testing.T) {
	ctx := t.Context()
	// The first request with this key took the only loaf.
	f := newCheckoutFixture(t, 0)
	cmd := f.command(t, 1, "5.00", "retry-k")
	existing := placedOrder(t, order.Pending, f.bread.ID())

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "retry-k").Return(existing, nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, nil, clock.NewFixed(placedAt))
	placed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, placed)
	assert.Equal(t, 0, f.bread.Quantity())
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	factory.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RetryWithExpiredStoreEntry(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t, 0)
	cmd := f.command(t, 1, "5.00", "expired-1")
	existing := placedOrder(t, order.Confirmed, f.bread.ID())

	store := new(MockIdempotencyStore)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		store.On("Recall", ctx, commands.IdempotencyScopeOrders, "expired-1").Return("", false, nil).Once(),
		store.On("TryLock", ctx, commands.IdempotencyScopeOrders, "expired-1").Return(true, nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "expired-1").Return(existing, nil).Once(),
		store.On("Remember", mock.Anything, commands.IdempotencyScopeOrders, "expired-1", existing.ID().String()).
			Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, store, clock.NewFixed(placedAt))
	placed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, placed)
	store.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_RememberFailureKeepsCommittedOrder(t *testing.T) {
	var logs bytes.Buffer
	ctx := logging.WithCtx(t.Context(), logging.NewWithWriter(&logs, logging.Options{}))
	f := newCheckoutFixture(t, 1)
	cmd := f.command(t, 1, "5.00", "flaky-1")
	resetErr := errors.New("redis: connection reset")

	store := new(MockIdempotencyStore)
	zoneRepo := new(MockZoneRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		store.On("Recall", ctx, commands.IdempotencyScopeOrders, "flaky-1").Return("", false, nil).Once(),
		store.On("TryLock", ctx, commands.IdempotencyScopeOrders, "flaky-1").Return(true, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "flaky-1").Return(noOrder, keyNotFound("flaky-1")).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ZoneRepository").Return(zoneRepo).Once(),
		zoneRepo.On("ListActive", ctx).Return(f.zones, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, []kernel.UUID{f.bread.ID()}).Return([]*catalog.Product{f.bread}, nil).Once(),
		productRepo.On("Update", ctx, f.bread).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		store.On("Remember", mock.Anything, commands.IdempotencyScopeOrders, "flaky-1", mock.AnythingOfType("string")).
			Return(resetErr).Once(),
		store.On("Unlock", mock.Anything, commands.IdempotencyScopeOrders, "flaky-1").Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewCreateOrderCommandHandler(factory, store, clock.NewFixed(placedAt))
	placed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.Equal(t, "flaky-1", placed.IdempotencyKey())
	assert.Equal(t, 0, f.bread.Quantity())
	assert.Contains(t, logs.String(), "Failed to remember idempotency key")
	assert.Contains(t, logs.String(), placed.ID().String())
	store.AssertExpectations(t)
	uow.AssertExpectations(t)
}

var noOrder *order.Order

func keyNotFound(key string) error {
	return errs.NewObjectNotFoundError("idempotency key", key)
}
