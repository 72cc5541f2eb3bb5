package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/db"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

// Input carries the writable category fields.
type Input struct {
	Name        string
	Description string
	ImageURL    string
}

type Repo struct {
	conn *gorm.DB
}

func NewRepo(conn *gorm.DB) *Repo {
	return &Repo{conn: conn}
}

// List returns all categories ordered by name. The catalog is small enough
// that the storefront always loads it whole.
func (r *Repo) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.conn.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return rows, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading category: %w", err)
	}
	return &category, nil
}

func (r *Repo) Create(ctx context.Context, category *models.Category) error {
	err := r.conn.WithContext(ctx).Create(category).Error
	if db.IsUniqueViolation(err, "categories_name_key") {
		return apperrors.New(apperrors.CodeConflict, "category name already exists")
	}
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Category, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(fields)
	if db.IsUniqueViolation(result.Error, "categories_name_key") {
		return nil, apperrors.New(apperrors.CodeConflict, "category name already exists")
	}
	if result.Error != nil {
		return nil, fmt.Errorf("updating category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "category not found")
	}
	return r.GetByID(ctx, id)
}

// Delete removes a category unless products still reference it.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	var inUse int64
	err := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&inUse).Error
	if err != nil {
		return fmt.Errorf("checking category usage: %w", err)
	}
	if inUse > 0 {
		return apperrors.New(apperrors.CodeConflict, "category still has products")
	}

	result := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("deleting category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "category not found")
	}
	return nil
}

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input Input) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "category name is required")
	}
	category := &models.Category{
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "category name is required")
	}
	return s.repo.Update(ctx, id, map[string]any{
		"name":        name,
		"description": input.Description,
		"image_url":   input.ImageURL,
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
