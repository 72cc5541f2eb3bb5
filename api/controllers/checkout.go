package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omerfq/stitchline-backend/api/middleware"
	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/checkout"
	"github.com/omerfq/stitchline-backend/internal/orders"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/types"
)

type shippingAddressRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type checkoutRequest struct {
	CustomerName    string                 `json:"customer_name" validate:"required"`
	CustomerEmail   string                 `json:"customer_email" validate:"required,email"`
	CustomerPhone   string                 `json:"customer_phone" validate:"required"`
	PaymentMethod   string                 `json:"payment_method"`
	CouponCode      string                 `json:"coupon_code"`
	ShippingAddress shippingAddressRequest `json:"shipping_address" validate:"required"`
}

type CheckoutController struct {
	checkout *checkout.Service
	orders   *orders.Service
	logg     *logger.Logger
}

func NewCheckoutController(checkoutSvc *checkout.Service, ordersSvc *orders.Service, logg *logger.Logger) *CheckoutController {
	return &CheckoutController{checkout: checkoutSvc, orders: ordersSvc, logg: logg}
}

// PlaceOrder turns the current cart into an order.
func (c *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkoutRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	country := req.ShippingAddress.Country
	if country == "" {
		country = "Pakistan"
	}

	order, err := c.checkout.PlaceOrder(ctx, checkout.PlaceOrderInput{
		CartToken:     middleware.CartTokenFromContext(ctx),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		ShippingAddress: types.ShippingAddress{
			FirstName:  req.ShippingAddress.FirstName,
			LastName:   req.ShippingAddress.LastName,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    country,
			Phone:      req.ShippingAddress.Phone,
		},
	})
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, order)
}

// GetOrder serves the public order confirmation view.
func (c *CheckoutController) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	order, err := c.orders.Get(ctx, orderID.String())
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}
