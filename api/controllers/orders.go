package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/orders"
	"github.com/omerfq/stitchline-backend/pkg/enums"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/pagination"
)

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type listEnvelope struct {
	Items      any    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type OrdersController struct {
	orders *orders.Service
	logg   *logger.Logger
}

func NewOrdersController(ordersSvc *orders.Service, logg *logger.Logger) *OrdersController {
	return &OrdersController{orders: ordersSvc, logg: logg}
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := validators.QueryInt(r, "limit", 0)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	filter := orders.ListFilter{
		Email: r.URL.Query().Get("email"),
		Page: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			responses.WriteError(ctx, w, c.logg, apperrors.Wrap(apperrors.CodeValidation, err, "invalid status filter"))
			return
		}
		filter.Status = &status
	}

	rows, next, err := c.orders.List(ctx, filter)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, listEnvelope{Items: rows, NextCursor: next})
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
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

func (c *OrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req updateStatusRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	order, err := c.orders.UpdateStatus(ctx, orderID.String(), enums.OrderStatus(req.Status))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}

func (c *OrdersController) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req updateTrackingRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	order, err := c.orders.SetTracking(ctx, orderID.String(), req.TrackingNumber)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}

func (c *OrdersController) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req updateNotesRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	order, err := c.orders.SetNotes(ctx, orderID.String(), req.Notes)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}
