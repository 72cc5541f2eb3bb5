package brands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "brands.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Category{}, &models.Brand{}, &models.Product{}))
	return NewService(NewRepo(conn)), conn
}

func TestCreateListUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Khaadi"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Alkaram"})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alkaram", rows[0].Name)

	updated, err := svc.Update(ctx, created.ID, Input{Name: "Khaadi Studio"})
	require.NoError(t, err)
	assert.Equal(t, "Khaadi Studio", updated.Name)
}

func TestCreateDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Khaadi"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Input{Name: "Khaadi"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.As(err).Code())
}

func TestDeleteDetachesProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	category := &models.Category{Name: "Lawn"}
	require.NoError(t, conn.Create(category).Error)

	brand, err := svc.Create(ctx, Input{Name: "Khaadi"})
	require.NoError(t, err)

	product := &models.Product{Name: "Suit", Price: 1000, CategoryID: category.ID, BrandID: &brand.ID, InStock: true}
	require.NoError(t, conn.Create(product).Error)

	require.NoError(t, svc.Delete(ctx, brand.ID))

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", product.ID).Error)
	assert.Nil(t, reloaded.BrandID)

	err = svc.Delete(ctx, brand.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}
