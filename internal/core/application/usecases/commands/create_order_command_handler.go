package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logging"
)

// IdempotencyScopeOrders namespaces checkout keys in the idempotency store.
const IdempotencyScopeOrders = "orders"

// ErrRequestInProgress is the conflict cause when a retry arrives while the
// first request with the same idempotency key is still running.
var ErrRequestInProgress = errors.New("request with this idempotency key is in progress")

// CreateOrderCommandHandler places orders. Reservation and order insert share
// one transaction, so a failed insert or a cancelled context rolls the
// reservation back with it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, idempotencyStore, clock.NewSystem())
//	placed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, catalog.ErrInsufficientStock) {
//	    // tell the client which product ran out
//	}
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	idempotency  ports.IdempotencyStore
	clock        clock.Clock
	resolver     services.DeliveryZoneResolver
	consolidator services.CartConsolidator
	ledger       services.InventoryLedger
}

// NewCreateOrderCommandHandler wires the handler. idempotency may be nil, in
// which case duplicate keys are caught by the database alone.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	idempotency ports.IdempotencyStore,
	clk clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		idempotency:  idempotency,
		clock:        clk,
		resolver:     services.NewDeliveryZoneResolver(),
		consolidator: services.NewCartConsolidator(),
		ledger:       services.NewInventoryLedger(),
	}
}

// Handle runs the checkout. A retried idempotency key returns the order the
// first request placed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	key := cmd.IdempotencyKey()
	if key == "" || h.idempotency == nil {
		return h.place(ctx, cmd)
	}

	if placed, found, err := h.replay(ctx, key); err != nil || found {
		return placed, err
	}

	locked, err := h.idempotency.TryLock(ctx, IdempotencyScopeOrders, key)
	if err != nil {
		return nil, err
	}
	if !locked {
		if placed, found, replayErr := h.replay(ctx, key); replayErr != nil || found {
			return placed, replayErr
		}
		return nil, errs.NewConflictErrorWithCause("idempotency key", key, ErrRequestInProgress)
	}

	placed, err := h.place(ctx, cmd)
	if err != nil {
		_ = h.idempotency.Unlock(context.WithoutCancel(ctx), IdempotencyScopeOrders, key)
		return nil, err
	}

	bgCtx := context.WithoutCancel(ctx)
	if err = h.idempotency.Remember(bgCtx, IdempotencyScopeOrders, key, placed.ID().String()); err != nil {
		// The order is committed. Retries find it through the key column once the claim is gone.
		logging.FromCtx(ctx, slog.Default()).WarnContext(ctx, "Failed to remember idempotency key",
			"idempotency_key", key, "order_id", placed.ID().String(), "error", err)
		_ = h.idempotency.Unlock(bgCtx, IdempotencyScopeOrders, key)
	}

	return placed, nil
}

// place looks the key up before reserving anything: a retry must get its
// order back even when the first attempt took the last unit in stock.
func (h *CreateOrderCommandHandler) place(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if key := cmd.IdempotencyKey(); key != "" {
		existing, found, err := h.loadByKey(ctx, key)
		if err != nil || found {
			return existing, err
		}
	}

	placed, err := h.placeInTx(ctx, cmd)
	if errors.Is(err, order.ErrDuplicateIdempotencyKey) {
		existing, found, replayErr := h.loadByKey(ctx, cmd.IdempotencyKey())
		if replayErr != nil {
			return nil, replayErr
		}
		if found {
			return existing, nil
		}
	}

	return placed, err
}

func (h *CreateOrderCommandHandler) placeInTx(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	zones, err := uow.ZoneRepository().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := h.resolver.Resolve(cmd.Customer().Address(), zones)
	if err != nil {
		return nil, err
	}
	if !quote.IsSameOffer(cmd.Quote().ZoneID, cmd.Quote().Fee) {
		return nil, errs.NewConflictErrorWithCause("delivery quote", cmd.Quote().ZoneID.String(), zone.ErrDeliveryQuoteStale)
	}

	productRepo := uow.ProductRepository()
	products, err := productRepo.GetForUpdate(ctx, services.ProductIDs(cmd.Items()))
	if err != nil {
		return nil, err
	}

	lines, err := h.consolidator.Consolidate(cmd.Items(), products)
	if err != nil {
		return nil, err
	}

	if err = h.ledger.Reserve(products, lines); err != nil {
		return nil, err
	}

	for _, p := range products {
		if err = productRepo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	placed, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.Customer(),
		lines,
		quote.ZoneID,
		quote.Fee,
		cmd.Notes(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	placed.AttachIdempotencyKey(cmd.IdempotencyKey())

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

func (h *CreateOrderCommandHandler) replay(ctx context.Context, key string) (*order.Order, bool, error) {
	id, found, err := h.idempotency.Recall(ctx, IdempotencyScopeOrders, key)
	if err != nil || !found {
		return nil, false, err
	}

	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return nil, false, err
	}

	uow := h.uowFactory.Create()
	placed, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	return placed, true, nil
}

func (h *CreateOrderCommandHandler) loadByKey(ctx context.Context, key string) (*order.Order, bool, error) {
	uow := h.uowFactory.Create()
	placed, err := uow.OrderRepository().GetByIdempotencyKey(ctx, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return placed, true, nil
}
