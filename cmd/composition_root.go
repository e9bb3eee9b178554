package cmd

import (
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/zonerepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"

	"gorm.io/gorm"
)

// CompositionRoot builds use case handlers over shared infrastructure.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	idempotency ports.IdempotencyStore
	clock       clock.Clock
}

// NewCompositionRoot wires handlers to db. idempotency may be nil.
func NewCompositionRoot(gormDB *gorm.DB, idempotency ports.IdempotencyStore) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		idempotency: idempotency,
		clock:       clock.NewSystem(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.idempotency, c.clock)
	return &h
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() *commands.SetOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewSetOrderStatusCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) CreateCreateDeliveryZoneCommandHandler() *commands.CreateDeliveryZoneCommandHandler {
	var f commands.ZoneUoWFactory = FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateDeliveryZoneCommandHandler(f, c.clock)
	return &h
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) *commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRelayOutboxCommandHandler(f, publisher, c.clock)
	return &h
}

func (c *CompositionRoot) CreateCheckDeliveryQueryHandler() queries.CheckDeliveryQueryHandler {
	return queries.NewCheckDeliveryQueryHandler(zonerepo.NewGormZoneRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveryZonesQueryHandler() queries.ListDeliveryZonesQueryHandler {
	return queries.NewListDeliveryZonesQueryHandler(c.gormDB)
}

// HTTPHandlers groups every handler the HTTP server drives.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		SetOrderStatus:     c.CreateSetOrderStatusCommandHandler(),
		CreateDeliveryZone: c.CreateCreateDeliveryZoneCommandHandler(),
		CheckDelivery:      c.CreateCheckDeliveryQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListDeliveryZones:  c.CreateListDeliveryZonesQueryHandler(),
	}
}

// UnitOfWorkFactory exposes the transaction factory for startup tasks.
func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return c.uowFactory
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
