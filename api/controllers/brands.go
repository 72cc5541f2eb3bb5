package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/brands"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

type brandRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type BrandsController struct {
	brands *brands.Service
	logg   *logger.Logger
}

func NewBrandsController(brandsSvc *brands.Service, logg *logger.Logger) *BrandsController {
	return &BrandsController{brands: brandsSvc, logg: logg}
}

func (c *BrandsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := c.brands.List(ctx)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, rows)
}

func (c *BrandsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brandID, err := validators.PathUUID(chi.URLParam(r, "brandId"), "brandId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	brand, err := c.brands.Get(ctx, brandID)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, brand)
}

func (c *BrandsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req brandRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	created, err := c.brands.Create(ctx, brands.Input{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, created)
}

func (c *BrandsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brandID, err := validators.PathUUID(chi.URLParam(r, "brandId"), "brandId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req brandRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	updated, err := c.brands.Update(ctx, brandID, brands.Input{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, updated)
}

func (c *BrandsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brandID, err := validators.PathUUID(chi.URLParam(r, "brandId"), "brandId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.brands.Delete(ctx, brandID); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
