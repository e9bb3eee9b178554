package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"

	"gorm.io/gorm"
)

type demoProduct struct {
	name, category, price string
	quantity              int
}

var demoProducts = []demoProduct{
	{"Sea Salt Chips", "Snacks", "2.49", 40},
	{"Cheese Crackers", "Snacks", "3.10", 25},
	{"Sparkling Water", "Drinks", "1.20", 60},
	{"Energy Drink", "Drinks", "2.99", 30},
	{"Dark Chocolate Bar", "Candy", "1.75", 50},
	{"Paper Towels", "Household", "4.50", 15},
}

var demoZones = []struct{ key, name, fee string }{
	{"Dorm A", "Dorm A", "0"},
	{"Dorm B", "Dorm B", "1.50"},
	{"Library", "Main Library", "2.00"},
}

// SeedDemoData fills an empty catalog with demo products and delivery zones.
// A catalog with any product in it is left alone.
func SeedDemoData(ctx context.Context, db *gorm.DB, uowFactory ports.UnitOfWorkFactory, clk clock.Clock, logger *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&productrepo.ProductDTO{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.InfoContext(ctx, "Catalog is not empty, skipping demo data", "products", count)
		return nil
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	now := clk.Now()
	for _, d := range demoProducts {
		p, err := catalog.NewProduct(kernel.NewUUID(), d.name, kernel.MustMoney(d.price), d.quantity, now)
		if err != nil {
			return fmt.Errorf("demo product %q: %w", d.name, err)
		}
		p.Describe("", d.category, "")
		if err := uow.ProductRepository().Add(ctx, p); err != nil {
			return err
		}
	}

	for _, d := range demoZones {
		z, err := zone.NewDeliveryZone(kernel.NewUUID(), d.key, d.name, kernel.MustMoney(d.fee), now)
		if err != nil {
			return fmt.Errorf("demo zone %q: %w", d.key, err)
		}
		if err := uow.ZoneRepository().Add(ctx, z); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Demo data seeded", "products", len(demoProducts), "zones", len(demoZones))
	return nil
}
