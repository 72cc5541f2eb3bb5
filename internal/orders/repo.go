package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/db/models"
	"github.com/omerfq/stitchline-backend/pkg/enums"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/pagination"
)

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status *enums.OrderStatus
	Email  string
	Page   pagination.Params
}

type Repo struct {
	conn *gorm.DB
}

func NewRepo(conn *gorm.DB) *Repo {
	return &Repo{conn: conn}
}

// Create inserts the order together with its items. Callers that need
// atomicity pass the transaction handle; a nil tx uses the base connection.
func (r *Repo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	conn := r.conn
	if tx != nil {
		conn = tx
	}
	if err := conn.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	return nil
}

// GetByID loads one order with its items.
func (r *Repo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.conn.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	return &order, nil
}

// List returns orders newest first with keyset pagination. The next cursor is
// empty when no further page exists.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]models.Order, string, error) {
	limit := pagination.NormalizeLimit(filter.Page.Limit)

	query := r.conn.WithContext(ctx).Model(&models.Order{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where("LOWER(customer_email) LIKE LOWER(?)", "%"+email+"%")
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

	var rows []models.Order
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Page.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", fmt.Errorf("listing orders: %w", err)
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	return rows, next, nil
}

// UpdateFields applies a partial update to one order and returns the fresh row.
func (r *Repo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*models.Order, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("updating order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	return r.GetByID(ctx, id)
}
