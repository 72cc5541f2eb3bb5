package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/omerfq/stitchline-backend/api/middleware"
	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/cart"
	"github.com/omerfq/stitchline-backend/internal/checkout"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

type addLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type updateLineRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type quoteRequest struct {
	CouponCode string `json:"coupon_code"`
}

// cartView decorates the stored cart with its derived totals.
type cartView struct {
	Token     string      `json:"token"`
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"item_count"`
	Subtotal  int64       `json:"subtotal"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Token:     c.Token,
		Lines:     c.Lines,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}

type CartController struct {
	carts    *cart.Service
	checkout *checkout.Service
	logg     *logger.Logger
}

func NewCartController(carts *cart.Service, checkoutSvc *checkout.Service, logg *logger.Logger) *CartController {
	return &CartController{carts: carts, checkout: checkoutSvc, logg: logg}
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loaded, err := c.carts.Get(ctx, middleware.CartTokenFromContext(ctx))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, viewOf(loaded))
}

func (c *CartController) AddLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addLineRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	productID, err := validators.PathUUID(req.ProductID, "product_id")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	var variantID *uuid.UUID
	if req.VariantID != nil {
		parsed, err := validators.PathUUID(*req.VariantID, "variant_id")
		if err != nil {
			responses.WriteError(ctx, w, c.logg, err)
			return
		}
		variantID = &parsed
	}

	updated, err := c.carts.AddLine(ctx, middleware.CartTokenFromContext(ctx), productID, variantID, req.Quantity)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, viewOf(updated))
}

func (c *CartController) UpdateLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lineID, err := validators.PathUUID(chi.URLParam(r, "lineId"), "lineId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req updateLineRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	updated, err := c.carts.SetQuantity(ctx, middleware.CartTokenFromContext(ctx), lineID, *req.Quantity)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, viewOf(updated))
}

func (c *CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lineID, err := validators.PathUUID(chi.URLParam(r, "lineId"), "lineId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	updated, err := c.carts.RemoveLine(ctx, middleware.CartTokenFromContext(ctx), lineID)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, viewOf(updated))
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.CartTokenFromContext(ctx)

	if err := c.carts.Clear(ctx, token); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, viewOf(cart.NewCart(token)))
}

// Quote prices the cart with an optional coupon without placing an order.
func (c *CartController) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req quoteRequest
	if r.ContentLength != 0 {
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, w, c.logg, err)
			return
		}
	}

	quote, err := c.checkout.QuoteCart(ctx, middleware.CartTokenFromContext(ctx), req.CouponCode)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, quote)
}
