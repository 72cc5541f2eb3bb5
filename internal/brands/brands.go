package brands

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

// Input carries the writable brand fields.
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

func (r *Repo) List(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	if err := r.conn.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	return rows, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading brand: %w", err)
	}
	return &brand, nil
}

func (r *Repo) Create(ctx context.Context, brand *models.Brand) error {
	err := r.conn.WithContext(ctx).Create(brand).Error
	if db.IsUniqueViolation(err, "brands_name_key") {
		return apperrors.New(apperrors.CodeConflict, "brand name already exists")
	}
	if err != nil {
		return fmt.Errorf("creating brand: %w", err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Brand, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Brand{}).
		Where("id = ?", id).
		Updates(fields)
	if db.IsUniqueViolation(result.Error, "brands_name_key") {
		return nil, apperrors.New(apperrors.CodeConflict, "brand name already exists")
	}
	if result.Error != nil {
		return nil, fmt.Errorf("updating brand: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	return r.GetByID(ctx, id)
}

// Delete removes a brand; referencing products fall back to no brand.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Product{}).
			Where("brand_id = ?", id).
			Update("brand_id", nil).Error
		if err != nil {
			return fmt.Errorf("detaching products: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Brand{})
		if result.Error != nil {
			return fmt.Errorf("deleting brand: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.CodeNotFound, "brand not found")
		}
		return nil
	})
}

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Brand, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input Input) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "brand name is required")
	}
	brand := &models.Brand{
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "brand name is required")
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
