package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/categories"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type CategoriesController struct {
	categories *categories.Service
	logg       *logger.Logger
}

func NewCategoriesController(categoriesSvc *categories.Service, logg *logger.Logger) *CategoriesController {
	return &CategoriesController{categories: categoriesSvc, logg: logg}
}

func (c *CategoriesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := c.categories.List(ctx)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, rows)
}

func (c *CategoriesController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID, err := validators.PathUUID(chi.URLParam(r, "categoryId"), "categoryId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	category, err := c.categories.Get(ctx, categoryID)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, category)
}

func (c *CategoriesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req categoryRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	created, err := c.categories.Create(ctx, categories.Input{
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

func (c *CategoriesController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID, err := validators.PathUUID(chi.URLParam(r, "categoryId"), "categoryId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req categoryRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	updated, err := c.categories.Update(ctx, categoryID, categories.Input{
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

func (c *CategoriesController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID, err := validators.PathUUID(chi.URLParam(r, "categoryId"), "categoryId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.categories.Delete(ctx, categoryID); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
