package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/omerfq/stitchline-backend/internal/cart"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

// UpdateInput is a partial product update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *int64
	SalePrice   *int64
	ClearSale   bool
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	ImageURL    *string
	Tags        []string
	InStock     *bool
	Featured    *bool
}

type Service struct {
	repo *Repo
	logg *logger.Logger
}

func NewService(repo *Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Product, string, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "product name is required")
	}
	if product.Price <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "product price must be positive")
	}
	if product.CategoryID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "category is required")
	}
	if product.SalePrice != nil && *product.SalePrice >= product.Price {
		return nil, apperrors.New(apperrors.CodeValidation, "sale price must be below the list price")
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, product.ID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "product name is required")
		}
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperrors.New(apperrors.CodeValidation, "product price must be positive")
		}
		fields["price"] = *input.Price
	}
	if input.ClearSale {
		fields["sale_price"] = nil
	} else if input.SalePrice != nil {
		fields["sale_price"] = *input.SalePrice
	}
	if input.CategoryID != nil {
		fields["category_id"] = *input.CategoryID
	}
	if input.BrandID != nil {
		fields["brand_id"] = *input.BrandID
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.Tags != nil {
		fields["tags"] = pq.StringArray(input.Tags)
	}
	if input.InStock != nil {
		fields["in_stock"] = *input.InStock
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}
	if len(fields) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *Service) ReplaceVariants(ctx context.Context, id uuid.UUID, variants []models.ProductVariant) (*models.Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceVariants(ctx, id, variants); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ReplaceImages(ctx context.Context, id uuid.UUID, images []models.ProductImage) (*models.Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceImages(ctx, id, images); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Snapshot resolves a product/variant pair into the priced snapshot the cart
// stores. Variant stock gates availability together with the product flag.
func (s *Service) Snapshot(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*cart.Snapshot, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	snapshot := &cart.Snapshot{
		ProductID: product.ID,
		Name:      product.Name,
		ImageURL:  primaryImage(product),
		UnitPrice: product.EffectivePrice(),
		InStock:   product.InStock,
	}

	if variantID != nil {
		variant, err := s.repo.GetVariant(ctx, productID, *variantID)
		if err != nil {
			return nil, err
		}
		snapshot.VariantID = variantID
		snapshot.Size = variant.Size
		snapshot.Color = variant.Color
		snapshot.UnitPrice = variant.EffectivePrice(product)
		snapshot.InStock = product.InStock && variant.InStock
	}
	return snapshot, nil
}

func primaryImage(product *models.Product) string {
	for _, image := range product.Images {
		if image.IsPrimary {
			return image.URL
		}
	}
	if len(product.Images) > 0 {
		return product.Images[0].URL
	}
	return product.ImageURL
}
