package categories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "categories.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Category{}, &models.Product{}))
	return NewService(NewRepo(conn)), conn
}

func TestCreateListGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Lawn", Description: "Summer lawn collection"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	_, err = svc.Create(ctx, Input{Name: "Formal"})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Formal", rows[0].Name)
	assert.Equal(t, "Lawn", rows[1].Name)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer lawn collection", loaded.Description)
}

func TestCreateDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Lawn"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Input{Name: "Lawn"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.As(err).Code())
}

func TestCreateBlankName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), Input{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Lawn"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Input{Name: "Premium Lawn", ImageURL: "https://img.example.com/lawn.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Premium Lawn", updated.Name)
	assert.Equal(t, "https://img.example.com/lawn.jpg", updated.ImageURL)

	_, err = svc.Update(ctx, uuid.New(), Input{Name: "Ghost"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}

func TestDeleteBlockedWhileInUse(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Lawn"})
	require.NoError(t, err)

	product := &models.Product{Name: "Suit", Price: 1000, CategoryID: created.ID, InStock: true}
	require.NoError(t, conn.Create(product).Error)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.As(err).Code())

	require.NoError(t, conn.Delete(product).Error)
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}
