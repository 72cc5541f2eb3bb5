package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem captures the product snapshot at checkout time. UnitPrice is the
// effective price charged, TotalPrice = UnitPrice * Quantity.
type OrderItem struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID        uuid.UUID  `gorm:"type:uuid;not null" json:"product_id"`
	ProductVariantID *uuid.UUID `gorm:"type:uuid" json:"product_variant_id,omitempty"`
	Name             string     `gorm:"not null" json:"name"`
	Quantity         int        `gorm:"not null" json:"quantity"`
	UnitPrice        int64      `gorm:"not null" json:"unit_price"`
	TotalPrice       int64      `gorm:"not null" json:"total_price"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
