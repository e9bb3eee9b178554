// Package productrepo persists catalog products and takes the row locks the
// inventory ledger relies on.
package productrepo

import (
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuantityCheck is the constraint keeping stock non-negative.
const QuantityCheck = "chk_products_quantity"

type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	Category    string          `gorm:"not null;default:'';index"`
	ImageURL    string          `gorm:"column:image_url;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null;check:chk_products_quantity,quantity >= 0"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID().Bytes(),
		Name:        p.Name(),
		Description: p.Description(),
		Category:    p.Category(),
		ImageURL:    p.ImageURL(),
		Price:       p.Price().Amount(),
		Quantity:    p.Quantity(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
	}
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return catalog.RestoreProduct(catalog.State{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		ImageURL:    dto.ImageURL,
		Price:       price,
		Quantity:    dto.Quantity,
		Active:      dto.IsActive,
		CreatedAt:   dto.CreatedAt.UTC(),
	})
}
