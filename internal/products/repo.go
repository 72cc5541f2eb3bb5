package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/pagination"
)

// ListFilter narrows the product listing.
type ListFilter struct {
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	Featured   *bool
	InStock    *bool
	Search     string
	Tag        string
	Page       pagination.Params
}

type Repo struct {
	conn *gorm.DB
}

func NewRepo(conn *gorm.DB) *Repo {
	return &Repo{conn: conn}
}

// List returns products newest first with keyset pagination, images preloaded
// for storefront cards.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]models.Product, string, error) {
	limit := pagination.NormalizeLimit(filter.Page.Limit)

	query := r.conn.WithContext(ctx).Model(&models.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	cursor, err := pagination.Parse(filter.Page.Cursor)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Product
	err = query.
		Preload("Images").
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Page.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", fmt.Errorf("listing products: %w", err)
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	return rows, next, nil
}

// GetByID loads one product with its category, brand, variants and images.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.conn.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("Variants").
		Preload("Images").
		Where("id = ?", id).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}
	return &product, nil
}

// GetVariant loads one variant scoped to its product.
func (r *Repo) GetVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.conn.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "product variant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading product variant: %w", err)
	}
	return &variant, nil
}

// Create inserts the product with any nested variants and images.
func (r *Repo) Create(ctx context.Context, product *models.Product) error {
	if err := r.conn.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update and returns the fresh row.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("updating product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	return r.GetByID(ctx, id)
}

// ReplaceVariants swaps the full variant set for a product in one transaction.
func (r *Repo) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
			return fmt.Errorf("clearing variants: %w", err)
		}
		for i := range variants {
			variants[i].ProductID = productID
		}
		if len(variants) == 0 {
			return nil
		}
		if err := tx.Create(&variants).Error; err != nil {
			return fmt.Errorf("creating variants: %w", err)
		}
		return nil
	})
}

// ReplaceImages swaps the full image set for a product in one transaction.
func (r *Repo) ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("clearing images: %w", err)
		}
		for i := range images {
			images[i].ProductID = productID
		}
		if len(images) == 0 {
			return nil
		}
		if err := tx.Create(&images).Error; err != nil {
			return fmt.Errorf("creating images: %w", err)
		}
		return nil
	})
}

// Delete removes a product with its variants and images.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return fmt.Errorf("deleting variants: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("deleting images: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Product{})
		if result.Error != nil {
			return fmt.Errorf("deleting product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.CodeNotFound, "product not found")
		}
		return nil
	})
}
