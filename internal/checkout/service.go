package checkout

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/internal/cart"
	"github.com/omerfq/stitchline-backend/internal/coupons"
	"github.com/omerfq/stitchline-backend/internal/orders"
	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	"github.com/omerfq/stitchline-backend/pkg/enums"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/metrics"
	"github.com/omerfq/stitchline-backend/pkg/types"
)

// TxRunner executes fn inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PlaceOrderInput carries everything checkout needs from the storefront form.
type PlaceOrderInput struct {
	CartToken       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress types.ShippingAddress
	PaymentMethod   string
	CouponCode      string
}

// Quote is the priced summary of a cart before the order is placed.
type Quote struct {
	ItemCount   int    `json:"item_count"`
	Subtotal    int64  `json:"subtotal"`
	Discount    int64  `json:"discount"`
	ShippingFee int64  `json:"shipping_fee"`
	Total       int64  `json:"total"`
	CouponCode  string `json:"coupon_code,omitempty"`
}

// Service turns carts into persisted orders.
type Service struct {
	carts      *cart.Service
	ordersRepo *orders.Repo
	tx         TxRunner
	cfg        config.CheckoutConfig
	metrics    *metrics.CheckoutMetrics
	logg       *logger.Logger
}

func NewService(
	carts *cart.Service,
	ordersRepo *orders.Repo,
	tx TxRunner,
	cfg config.CheckoutConfig,
	m *metrics.CheckoutMetrics,
	logg *logger.Logger,
) *Service {
	return &Service{
		carts:      carts,
		ordersRepo: ordersRepo,
		tx:         tx,
		cfg:        cfg,
		metrics:    m,
		logg:       logg,
	}
}

// shippingFor applies the flat fee rule: free at or above the threshold,
// measured against the pre-discount subtotal.
func (s *Service) shippingFor(subtotal int64) int64 {
	if subtotal >= int64(s.cfg.FreeShippingThreshold) {
		return 0
	}
	return int64(s.cfg.FlatShippingFee)
}

func (s *Service) priceCart(c *cart.Cart, couponCode string) (*Quote, error) {
	quote := &Quote{
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}

	if strings.TrimSpace(couponCode) != "" {
		coupon, err := coupons.Lookup(couponCode)
		if err != nil {
			return nil, err
		}
		quote.Discount = coupon.DiscountFor(quote.Subtotal)
		quote.CouponCode = coupon.Code
	}

	quote.ShippingFee = s.shippingFor(quote.Subtotal)
	quote.Total = quote.Subtotal - quote.Discount + quote.ShippingFee
	return quote, nil
}

// QuoteCart prices the current cart without placing an order.
func (s *Service) QuoteCart(ctx context.Context, token string, couponCode string) (*Quote, error) {
	c, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.priceCart(c, couponCode)
}

// PlaceOrder validates the cart, prices it, and persists the order with its
// items in a single transaction. The cart is cleared after a successful
// placement; a failed clear is logged but does not fail the order.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		s.metrics.IncFailed("validation")
		return nil, err
	}

	method := enums.PaymentMethodCashOnDelivery
	if input.PaymentMethod != "" {
		parsed, err := enums.ParsePaymentMethod(input.PaymentMethod)
		if err != nil {
			s.metrics.IncFailed("validation")
			return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid payment method")
		}
		method = parsed
	}

	c, err := s.carts.Get(ctx, input.CartToken)
	if err != nil {
		s.metrics.IncFailed("cart_load")
		return nil, err
	}
	if c.IsEmpty() {
		s.metrics.IncFailed("empty_cart")
		return nil, apperrors.New(apperrors.CodeValidation, "cart is empty")
	}

	quote, err := s.priceCart(c, input.CouponCode)
	if err != nil {
		s.metrics.IncFailed("coupon")
		return nil, err
	}

	order := &models.Order{
		Status:          enums.OrderStatusPending,
		SubtotalAmount:  quote.Subtotal,
		DiscountAmount:  quote.Discount,
		ShippingFee:     quote.ShippingFee,
		TotalAmount:     quote.Total,
		CouponCode:      quote.CouponCode,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   method,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		Items:           itemsFromCart(c),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.ordersRepo.Create(ctx, tx, order)
	})
	if err != nil {
		s.metrics.IncFailed("persistence")
		return nil, fmt.Errorf("placing order: %w", err)
	}

	s.metrics.ObservePlaced(method.String(), int(quote.Total))

	if err := s.carts.Clear(ctx, input.CartToken); err != nil && s.logg != nil {
		meta := map[string]any{"order_id": order.ID.String()}
		s.logg.Warn(s.logg.WithFields(ctx, meta), "cart not cleared after checkout")
	}

	if s.logg != nil {
		meta := map[string]any{
			"order_id":       order.ID.String(),
			"total_amount":   order.TotalAmount,
			"payment_method": method.String(),
		}
		s.logg.Info(s.logg.WithFields(ctx, meta), "order placed")
	}
	return order, nil
}

func itemsFromCart(c *cart.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		name := line.Name
		if line.Size != "" || line.Color != "" {
			variant := strings.TrimSpace(strings.Join([]string{line.Size, line.Color}, " "))
			name = fmt.Sprintf("%s (%s)", line.Name, variant)
		}
		items = append(items, models.OrderItem{
			ProductID:        line.ProductID,
			ProductVariantID: line.VariantID,
			Name:             name,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			TotalPrice:       line.UnitPrice * int64(line.Quantity),
		})
	}
	return items
}

func validateInput(input PlaceOrderInput) error {
	missing := []string{}
	if strings.TrimSpace(input.CartToken) == "" {
		missing = append(missing, "cart_token")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		missing = append(missing, "customer_email")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		missing = append(missing, "customer_phone")
	}
	if strings.TrimSpace(input.ShippingAddress.Address) == "" {
		missing = append(missing, "shipping_address.address")
	}
	if strings.TrimSpace(input.ShippingAddress.City) == "" {
		missing = append(missing, "shipping_address.city")
	}
	if strings.TrimSpace(input.ShippingAddress.PostalCode) == "" {
		missing = append(missing, "shipping_address.postal_code")
	}
	if len(missing) > 0 {
		return apperrors.New(apperrors.CodeValidation, "missing required checkout fields").
			WithDetails(map[string][]string{"missing": missing})
	}
	if !strings.Contains(input.CustomerEmail, "@") {
		return apperrors.New(apperrors.CodeValidation, "invalid customer email").
			WithDetails(map[string][]string{"invalid": {"customer_email"}})
	}
	return nil
}
