package products

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/pagination"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "products.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
	))
	return NewService(NewRepo(conn), nil), conn
}

func seedCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, conn.Create(category).Error)
	return category
}

func intPtr(v int64) *int64 { return &v }

func TestCreateAndGetProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	created, err := svc.Create(ctx, &models.Product{
		Name:       "Summer Lawn Suit",
		Price:      4500,
		SalePrice:  intPtr(3800),
		CategoryID: category.ID,
		Tags:       []string{"lawn", "summer"},
		InStock:    true,
		Variants: []models.ProductVariant{
			{Name: "Medium Blue", Size: "M", Color: "Blue", InStock: true},
		},
		Images: []models.ProductImage{
			{URL: "https://img.example.com/suit-front.jpg", IsPrimary: true},
		},
	})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Lawn Suit", loaded.Name)
	assert.Equal(t, int64(3800), loaded.EffectivePrice())
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "Lawn", loaded.Category.Name)
	require.Len(t, loaded.Variants, 1)
	require.Len(t, loaded.Images, 1)
}

func TestCreateProductValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	cases := []struct {
		name    string
		product models.Product
	}{
		{"missing name", models.Product{Price: 100, CategoryID: category.ID}},
		{"zero price", models.Product{Name: "X", Price: 0, CategoryID: category.ID}},
		{"missing category", models.Product{Name: "X", Price: 100}},
		{"sale above list", models.Product{Name: "X", Price: 100, SalePrice: intPtr(150), CategoryID: category.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := tc.product
			_, err := svc.Create(ctx, &product)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
		})
	}
}

func TestListFiltersAndPagination(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	lawn := seedCategory(t, conn, "Lawn")
	formal := seedCategory(t, conn, "Formal")

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	seed := []models.Product{
		{Name: "Lawn Suit A", Price: 1000, CategoryID: lawn.ID, InStock: true, Featured: true, CreatedAt: base},
		{Name: "Lawn Suit B", Price: 1200, CategoryID: lawn.ID, InStock: true, CreatedAt: base.Add(time.Hour)},
		{Name: "Silk Gown", Price: 9000, CategoryID: formal.ID, InStock: false, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	rows, _, err := svc.List(ctx, ListFilter{CategoryID: &lawn.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	featured := true
	rows, _, err = svc.List(ctx, ListFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lawn Suit A", rows[0].Name)

	inStock := true
	rows, _, err = svc.List(ctx, ListFilter{InStock: &inStock})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, _, err = svc.List(ctx, ListFilter{Search: "silk"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Silk Gown", rows[0].Name)

	first, cursor, err := svc.List(ctx, ListFilter{Page: pagination.Params{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, cursor)
	assert.Equal(t, "Silk Gown", first[0].Name)

	second, next, err := svc.List(ctx, ListFilter{Page: pagination.Params{Limit: 2, Cursor: cursor}})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Empty(t, next)
	assert.Equal(t, "Lawn Suit A", second[0].Name)
}

func TestUpdateProductPartial(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	created, err := svc.Create(ctx, &models.Product{
		Name: "Suit", Price: 4000, SalePrice: intPtr(3500), CategoryID: category.ID, InStock: true,
	})
	require.NoError(t, err)

	name := "Renamed Suit"
	featured := true
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Name: &name, Featured: &featured, ClearSale: true})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Suit", updated.Name)
	assert.True(t, updated.Featured)
	assert.Nil(t, updated.SalePrice)
	assert.Equal(t, int64(4000), updated.Price)

	_, err = svc.Update(ctx, uuid.New(), UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}

func TestReplaceVariants(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	created, err := svc.Create(ctx, &models.Product{
		Name: "Suit", Price: 4000, CategoryID: category.ID, InStock: true,
		Variants: []models.ProductVariant{{Name: "Small", Size: "S", InStock: true}},
	})
	require.NoError(t, err)

	updated, err := svc.ReplaceVariants(ctx, created.ID, []models.ProductVariant{
		{Name: "Medium", Size: "M", InStock: true},
		{Name: "Large", Size: "L", InStock: false},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 2)

	updated, err = svc.ReplaceVariants(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Variants)
}

func TestDeleteProductRemovesChildren(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	created, err := svc.Create(ctx, &models.Product{
		Name: "Suit", Price: 4000, CategoryID: category.ID, InStock: true,
		Variants: []models.ProductVariant{{Name: "Small", Size: "S", InStock: true}},
		Images:   []models.ProductImage{{URL: "https://img.example.com/a.jpg"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())

	var variants, images int64
	require.NoError(t, conn.Model(&models.ProductVariant{}).Count(&variants).Error)
	require.NoError(t, conn.Model(&models.ProductImage{}).Count(&images).Error)
	assert.Zero(t, variants)
	assert.Zero(t, images)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}

func TestSnapshotProductOnly(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	created, err := svc.Create(ctx, &models.Product{
		Name: "Suit", Price: 4000, SalePrice: intPtr(3500), CategoryID: category.ID, InStock: true,
		Images: []models.ProductImage{
			{URL: "https://img.example.com/side.jpg"},
			{URL: "https://img.example.com/front.jpg", IsPrimary: true},
		},
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), snap.UnitPrice)
	assert.Equal(t, "https://img.example.com/front.jpg", snap.ImageURL)
	assert.True(t, snap.InStock)
	assert.Nil(t, snap.VariantID)
}

func TestSnapshotVariantOverrides(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	category := seedCategory(t, conn, "Lawn")

	created, err := svc.Create(ctx, &models.Product{
		Name: "Suit", Price: 4000, CategoryID: category.ID, InStock: true,
		Variants: []models.ProductVariant{
			{Name: "Premium Large", Size: "L", Color: "Red", Price: intPtr(4400), InStock: true},
			{Name: "Sold Out Small", Size: "S", InStock: false},
		},
	})
	require.NoError(t, err)

	var priced, soldOut models.ProductVariant
	for _, variant := range created.Variants {
		if variant.Name == "Premium Large" {
			priced = variant
		} else {
			soldOut = variant
		}
	}

	snap, err := svc.Snapshot(ctx, created.ID, &priced.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4400), snap.UnitPrice)
	assert.Equal(t, "L", snap.Size)
	assert.Equal(t, "Red", snap.Color)
	assert.True(t, snap.InStock)

	snap, err = svc.Snapshot(ctx, created.ID, &soldOut.ID)
	require.NoError(t, err)
	assert.False(t, snap.InStock)

	unknown := uuid.New()
	_, err = svc.Snapshot(ctx, created.ID, &unknown)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}
