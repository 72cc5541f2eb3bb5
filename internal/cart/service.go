package cart

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

// Snapshot is the sellable unit resolved from the catalog at add time.
type Snapshot struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Name      string
	Size      string
	Color     string
	ImageURL  string
	UnitPrice int64
	InStock   bool
}

// Catalog resolves a product/variant pair into a priced snapshot.
type Catalog interface {
	Snapshot(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*Snapshot, error)
}

// Service applies cart mutations against storage. Every mutation is a
// load, modify, save round trip keyed on the guest token.
type Service struct {
	storage Storage
	catalog Catalog
	logg    *logger.Logger
}

func NewService(storage Storage, catalog Catalog, logg *logger.Logger) *Service {
	return &Service{storage: storage, catalog: catalog, logg: logg}
}

func (s *Service) Get(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "cart token is required")
	}
	return s.storage.Load(ctx, token)
}

// AddLine resolves the product against the catalog and merges it into the
// cart. Adding an existing product/variant pair increases its quantity.
func (s *Service) AddLine(ctx context.Context, token string, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*Cart, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "cart token is required")
	}
	if quantity < 1 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}

	snapshot, err := s.catalog.Snapshot(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	if !snapshot.InStock {
		return nil, apperrors.New(apperrors.CodeConflict, "product is out of stock")
	}

	cart, err := s.storage.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart.Add(Line{
		ProductID: snapshot.ProductID,
		VariantID: snapshot.VariantID,
		Name:      snapshot.Name,
		Size:      snapshot.Size,
		Color:     snapshot.Color,
		ImageURL:  snapshot.ImageURL,
		UnitPrice: snapshot.UnitPrice,
		Quantity:  quantity,
	})

	if err := s.storage.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity updates a single line. Zero or negative quantities remove the
// line entirely.
func (s *Service) SetQuantity(ctx context.Context, token string, lineID uuid.UUID, quantity int) (*Cart, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "cart token is required")
	}

	cart, err := s.storage.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if !cart.SetQuantity(lineID, quantity) {
		return nil, apperrors.New(apperrors.CodeNotFound, "cart line not found")
	}

	if err := s.storage.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine deletes a line. Removing a line that is not present succeeds.
func (s *Service) RemoveLine(ctx context.Context, token string, lineID uuid.UUID) (*Cart, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "cart token is required")
	}

	cart, err := s.storage.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	cart.Remove(lineID)

	if err := s.storage.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear drops the stored cart for the token.
func (s *Service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.New(apperrors.CodeValidation, "cart token is required")
	}
	return s.storage.Delete(ctx, token)
}
