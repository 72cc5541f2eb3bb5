package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/omerfq/stitchline-backend/pkg/db/models"
	"github.com/omerfq/stitchline-backend/pkg/enums"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

// Service drives the admin-facing order operations.
type Service struct {
	repo *Repo
	logg *logger.Logger
}

func NewService(repo *Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Order, string, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves the order along the status graph. Transitions outside the
// graph are rejected, including any change away from a terminal status.
func (s *Service) UpdateStatus(ctx context.Context, id string, target enums.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown order status %q", target))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		return order, nil
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, apperrors.New(
			apperrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target),
		).WithDetails(map[string]string{
			"current_status":   order.Status.String(),
			"requested_status": target.String(),
		})
	}

	updated, err := s.repo.UpdateFields(ctx, id, map[string]any{"status": target.String()})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		meta := map[string]any{"order_id": id, "from": order.Status.String(), "to": target.String()}
		s.logg.Info(s.logg.WithFields(ctx, meta), "order status updated")
	}
	return updated, nil
}

// SetTracking records the carrier tracking number.
func (s *Service) SetTracking(ctx context.Context, id string, trackingNumber string) (*models.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "tracking number is required")
	}
	return s.repo.UpdateFields(ctx, id, map[string]any{"tracking_number": trackingNumber})
}

// SetNotes replaces the internal notes on an order. Empty notes are allowed.
func (s *Service) SetNotes(ctx context.Context, id string, notes string) (*models.Order, error) {
	return s.repo.UpdateFields(ctx, id, map[string]any{"notes": notes})
}
