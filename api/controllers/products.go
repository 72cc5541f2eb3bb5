package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/api/validators"
	"github.com/omerfq/stitchline-backend/internal/products"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/pagination"
)

type variantRequest struct {
	Name      string `json:"name" validate:"required"`
	SKU       string `json:"sku"`
	Price     *int64 `json:"price" validate:"omitempty,gt=0"`
	SalePrice *int64 `json:"sale_price" validate:"omitempty,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	InStock   *bool  `json:"in_stock"`
}

type imageRequest struct {
	URL       string `json:"url" validate:"required,url"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       int64            `json:"price" validate:"required,gt=0"`
	SalePrice   *int64           `json:"sale_price" validate:"omitempty,gt=0"`
	CategoryID  string           `json:"category_id" validate:"required,uuid"`
	BrandID     *string          `json:"brand_id" validate:"omitempty,uuid"`
	ImageURL    string           `json:"image_url" validate:"omitempty,url"`
	Tags        []string         `json:"tags"`
	InStock     *bool            `json:"in_stock"`
	Featured    bool             `json:"featured"`
	Variants    []variantRequest `json:"variants" validate:"omitempty,dive"`
	Images      []imageRequest   `json:"images" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price" validate:"omitempty,gt=0"`
	SalePrice   *int64   `json:"sale_price" validate:"omitempty,gt=0"`
	ClearSale   bool     `json:"clear_sale"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	BrandID     *string  `json:"brand_id" validate:"omitempty,uuid"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	InStock     *bool    `json:"in_stock"`
	Featured    *bool    `json:"featured"`
}

type replaceVariantsRequest struct {
	Variants []variantRequest `json:"variants" validate:"dive"`
}

type replaceImagesRequest struct {
	Images []imageRequest `json:"images" validate:"dive"`
}

type ProductsController struct {
	products *products.Service
	logg     *logger.Logger
}

func NewProductsController(productsSvc *products.Service, logg *logger.Logger) *ProductsController {
	return &ProductsController{products: productsSvc, logg: logg}
}

func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := validators.QueryInt(r, "limit", 0)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	categoryID, err := validators.QueryUUID(r, "category_id")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	brandID, err := validators.QueryUUID(r, "brand_id")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	featured, err := validators.QueryBool(r, "featured")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	inStock, err := validators.QueryBool(r, "in_stock")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	filter := products.ListFilter{
		CategoryID: categoryID,
		BrandID:    brandID,
		Featured:   featured,
		InStock:    inStock,
		Search:     r.URL.Query().Get("search"),
		Tag:        r.URL.Query().Get("tag"),
		Page: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
	}

	rows, next, err := c.products.List(ctx, filter)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, listEnvelope{Items: rows, NextCursor: next})
}

func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := validators.PathUUID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	product, err := c.products.Get(ctx, productID)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, product)
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createProductRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	categoryID, err := validators.PathUUID(req.CategoryID, "category_id")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	var brandID *uuid.UUID
	if req.BrandID != nil {
		parsed, err := validators.PathUUID(*req.BrandID, "brand_id")
		if err != nil {
			responses.WriteError(ctx, w, c.logg, err)
			return
		}
		brandID = &parsed
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		CategoryID:  categoryID,
		BrandID:     brandID,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		InStock:     inStock,
		Featured:    req.Featured,
		Variants:    variantsFromRequests(req.Variants),
		Images:      imagesFromRequests(req.Images),
	}

	created, err := c.products.Create(ctx, product)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, created)
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := validators.PathUUID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req updateProductRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	input := products.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		ClearSale:   req.ClearSale,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		InStock:     req.InStock,
		Featured:    req.Featured,
	}
	if req.CategoryID != nil {
		parsed, err := validators.PathUUID(*req.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(ctx, w, c.logg, err)
			return
		}
		input.CategoryID = &parsed
	}
	if req.BrandID != nil {
		parsed, err := validators.PathUUID(*req.BrandID, "brand_id")
		if err != nil {
			responses.WriteError(ctx, w, c.logg, err)
			return
		}
		input.BrandID = &parsed
	}

	updated, err := c.products.Update(ctx, productID, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, updated)
}

func (c *ProductsController) ReplaceVariants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := validators.PathUUID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req replaceVariantsRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	updated, err := c.products.ReplaceVariants(ctx, productID, variantsFromRequests(req.Variants))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, updated)
}

func (c *ProductsController) ReplaceImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := validators.PathUUID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var req replaceImagesRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	updated, err := c.products.ReplaceImages(ctx, productID, imagesFromRequests(req.Images))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, updated)
}

func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := validators.PathUUID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.products.Delete(ctx, productID); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func variantsFromRequests(reqs []variantRequest) []models.ProductVariant {
	out := make([]models.ProductVariant, 0, len(reqs))
	for _, req := range reqs {
		inStock := true
		if req.InStock != nil {
			inStock = *req.InStock
		}
		out = append(out, models.ProductVariant{
			Name:      req.Name,
			SKU:       req.SKU,
			Price:     req.Price,
			SalePrice: req.SalePrice,
			Size:      req.Size,
			Color:     req.Color,
			InStock:   inStock,
		})
	}
	return out
}

func imagesFromRequests(reqs []imageRequest) []models.ProductImage {
	out := make([]models.ProductImage, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, models.ProductImage{
			URL:       req.URL,
			AltText:   req.AltText,
			IsPrimary: req.IsPrimary,
		})
	}
	return out
}
