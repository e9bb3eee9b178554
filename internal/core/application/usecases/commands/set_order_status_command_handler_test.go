package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var operator = ports.Principal{Subject: "operator@shop"}

// placedOrder restores an order with one line per product id in lineProducts
// (one random product when none are given) in the given status.
func placedOrder(t *testing.T, status order.Status, lineProducts ...kernel.UUID) *order.Order {
	t.Helper()
	if len(lineProducts) == 0 {
		lineProducts = []kernel.UUID{kernel.NewUUID()}
	}

	lines := make([]order.Line, 0, len(lineProducts))
	for _, id := range lineProducts {
		l, err := order.NewLine(id, "Item", kernel.MustMoney("2.50"), 2)
		require.NoError(t, err)
		lines = append(lines, l)
	}

	o, err := order.RestoreOrder(order.State{
		ID:          kernel.NewUUID(),
		Customer:    validCustomer(t),
		Lines:       lines,
		ZoneID:      kernel.NewUUID(),
		DeliveryFee: kernel.MustMoney("5.00"),
		Total:       kernel.MustMoney("10.00"),
		Status:      status,
		CreatedAt:   placedAt,
		UpdatedAt:   placedAt,
	})
	require.NoError(t, err)
	return o
}

func TestSetOrderStatusCommandHandler_Handle_Forward(t *testing.T) {
	// Arrange
	ctx := t.Context()
	existing := placedOrder(t, order.Pending)
	cmd, err := commands.NewSetOrderStatusCommand(existing.ID(), order.Confirmed, operator)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	changedAt := placedAt.Add(30 * time.Minute)

	handler := commands.NewSetOrderStatusCommandHandler(factory, clock.NewFixed(changedAt))

	// Act
	updated, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	assert.Equal(t, changedAt, updated.UpdatedAt())
	require.Len(t, updated.DomainEvents(), 1)
	changed, ok := updated.DomainEvents()[0].(order.OrderStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "operator@shop", changed.ChangedBy)
	uow.AssertNotCalled(t, "ProductRepository")
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_CancelReleasesStock(t *testing.T) {
	ctx := t.Context()
	a, err := catalog.NewProduct(kernel.NewUUID(), "A", kernel.MustMoney("2.50"), 0, placedAt)
	require.NoError(t, err)
	b, err := catalog.NewProduct(kernel.NewUUID(), "B", kernel.MustMoney("2.50"), 3, placedAt)
	require.NoError(t, err)
	existing := placedOrder(t, order.Preparing, a.ID(), b.ID())
	cmd, err := commands.NewSetOrderStatusCommand(existing.ID(), order.Cancelled, operator)
	require.NoError(t, err)

	lockOrder := kernel.SortedUnique([]kernel.UUID{a.ID(), b.ID()})
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetForUpdate", ctx, lockOrder).Return([]*catalog.Product{a, b}, nil).Once(),
		productRepo.On("Update", ctx, a).Return(nil).Once(),
		productRepo.On("Update", ctx, b).Return(nil).Once(),
		orderRepo.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetOrderStatusCommandHandler(factory, clock.NewSystem())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Equal(t, 2, a.Quantity())
	assert.Equal(t, 5, b.Quantity())
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_IllegalTransitionWritesNothing(t *testing.T) {
	ctx := t.Context()
	existing := placedOrder(t, order.Pending)
	cmd, err := commands.NewSetOrderStatusCommand(existing.ID(), order.OutForDelivery, operator)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetOrderStatusCommandHandler(factory, clock.NewSystem())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrIllegalTransition)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.Pending, existing.Status())
	assert.Empty(t, existing.DomainEvents())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_CancelFromOutForDeliveryRejected(t *testing.T) {
	ctx := t.Context()
	existing := placedOrder(t, order.OutForDelivery)
	cmd, err := commands.NewSetOrderStatusCommand(existing.ID(), order.Cancelled, operator)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetOrderStatusCommandHandler(factory, clock.NewSystem())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrIllegalTransition)
	uow.AssertNotCalled(t, "ProductRepository")
}

func TestSetOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewSetOrderStatusCommand(id, order.Confirmed, operator)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, id).Return((*order.Order)(nil), errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetOrderStatusCommandHandler(factory, clock.NewSystem())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	existing := placedOrder(t, order.Confirmed)
	cmd, err := commands.NewSetOrderStatusCommand(existing.ID(), order.Preparing, operator)
	require.NoError(t, err)
	expectedError := errors.New("commit failed")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(expectedError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetOrderStatusCommandHandler(factory, clock.NewSystem())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, expectedError)
	uow.AssertExpectations(t)
}
