package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/enums"
	"github.com/omerfq/stitchline-backend/pkg/types"
)

// Order amounts are whole PKR. TotalAmount is always
// SubtotalAmount + ShippingFee - DiscountAmount.
type Order struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Status          enums.OrderStatus     `gorm:"not null;default:pending;index" json:"status"`
	TotalAmount     int64                 `gorm:"not null" json:"total_amount"`
	SubtotalAmount  int64                 `gorm:"not null" json:"subtotal_amount"`
	ShippingFee     int64                 `gorm:"not null;default:0" json:"shipping_fee"`
	DiscountAmount  int64                 `gorm:"not null;default:0" json:"discount_amount"`
	CouponCode      string                `json:"coupon_code,omitempty"`
	ShippingAddress types.ShippingAddress `gorm:"serializer:json" json:"shipping_address"`
	PaymentMethod   enums.PaymentMethod   `gorm:"not null;default:cash_on_delivery" json:"payment_method"`
	CustomerName    string                `gorm:"not null" json:"customer_name"`
	CustomerEmail   string                `gorm:"not null;index" json:"customer_email"`
	CustomerPhone   string                `gorm:"not null" json:"customer_phone"`
	TrackingNumber  string                `json:"tracking_number,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enums.OrderStatusPending
	}
	return nil
}
