package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	SKU       string    `gorm:"column:sku" json:"sku"`
	Price     *int64    `json:"price,omitempty"`
	SalePrice *int64    `json:"sale_price,omitempty"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	InStock   bool      `gorm:"not null;default:true" json:"in_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductVariant) TableName() string { return "product_variants" }

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// EffectivePrice resolves the variant price against its parent product. Variants
// without their own price inherit the product's effective price.
func (v *ProductVariant) EffectivePrice(parent *Product) int64 {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	if v.Price != nil {
		return *v.Price
	}
	if parent != nil {
		return parent.EffectivePrice()
	}
	return 0
}
