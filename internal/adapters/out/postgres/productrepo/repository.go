package productrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/pgerrors"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product.
func (r *GormProductRepository) Add(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := fromDomain(product)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every mutable column. A write that would drive stock below
// zero is reported as insufficient stock.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := fromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "description", "category", "image_url", "price", "quantity", "is_active").
		Updates(&dto)
	if result.Error != nil {
		if pgerrors.IsCheckViolation(result.Error, QuantityCheck) {
			return errs.NewConflictErrorWithCause("product", product.ID().String(), catalog.ErrInsufficientStock)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", product.ID().String())
	}

	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks the rows of ids in ascending id order. Every caller locks
// in that same order, so concurrent multi-product reservations cannot deadlock.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	sorted := kernel.SortedUnique(ids)
	if len(sorted) == 0 {
		return []*catalog.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(sorted))
	for _, id := range sorted {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		products = append(products, p)
	}

	return products, nil
}
