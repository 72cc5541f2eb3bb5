package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product prices are whole PKR amounts. SalePrice, when set, is the price
// charged at checkout.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	SalePrice   *int64         `json:"sale_price,omitempty"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	BrandID     *uuid.UUID     `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	ImageURL    string         `json:"image_url"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	InStock     bool           `gorm:"not null;default:true" json:"in_stock"`
	Featured    bool           `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectivePrice returns the sale price when one is set, otherwise the list price.
func (p *Product) EffectivePrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
