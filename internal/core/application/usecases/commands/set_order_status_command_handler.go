package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/clock"
)

// SetOrderStatusCommandHandler applies operator status changes. The order row
// stays locked from read to commit, so two operators cannot both move the
// same order out of one state.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	ledger     services.InventoryLedger
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		ledger:     services.NewInventoryLedger(),
	}
}

// Handle returns the updated order. An illegal transition returns a
// ConflictError wrapping order.ErrIllegalTransition and writes nothing.
// Cancellation puts the order's quantities back in stock in the same
// transaction.
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Requested(), cmd.Principal().Subject, h.clock.Now()); err != nil {
		return nil, err
	}

	if aggregate.Status() == order.Cancelled {
		if err = h.release(ctx, uow, aggregate); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h *SetOrderStatusCommandHandler) release(ctx context.Context, uow OrderUoW, cancelled *order.Order) error {
	lines := cancelled.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID())
	}

	productRepo := uow.ProductRepository()
	products, err := productRepo.GetForUpdate(ctx, kernel.SortedUnique(ids))
	if err != nil {
		return err
	}

	if err = h.ledger.Release(products, lines); err != nil {
		return err
	}

	for _, p := range products {
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
