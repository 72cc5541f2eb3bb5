package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/auth"
	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/security"
)

// LoginResult is the token pair returned to the admin panel.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        models.AdminUser `json:"user"`
}

type Repo struct {
	conn *gorm.DB
}

func NewRepo(conn *gorm.DB) *Repo {
	return &Repo{conn: conn}
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.conn.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "admin user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading admin user: %w", err)
	}
	return &user, nil
}

func (r *Repo) Create(ctx context.Context, user *models.AdminUser) error {
	err := r.conn.WithContext(ctx).Create(user).Error
	if db.IsUniqueViolation(err, "admin_users_email_key") {
		return apperrors.New(apperrors.CodeConflict, "email already registered")
	}
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	return nil
}

// Service owns admin credential checks and token issuance.
type Service struct {
	repo        *Repo
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	appCfg      config.AppConfig
	logg        *logger.Logger
	now         func() time.Time
}

func NewService(repo *Repo, cfg *config.Config, logg *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		jwtCfg:      cfg.JWT,
		passwordCfg: cfg.Password,
		appCfg:      cfg.App,
		logg:        logg,
		now:         time.Now,
	}
}

// Login verifies the credentials and mints an access token. Unknown emails and
// wrong passwords return the same unauthorized error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.As(err) != nil && apperrors.As(err).Code() == apperrors.CodeNotFound {
			return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "minting access token")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "admin login")
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.Expiration()),
		User:        *user,
	}, nil
}

// Register creates an admin user. Registration is closed in production, where
// accounts are provisioned through seeding.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*models.AdminUser, error) {
	if s.appCfg.IsProd() {
		return nil, apperrors.New(apperrors.CodeForbidden, "registration is disabled")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.New(apperrors.CodeValidation, "a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperrors.New(apperrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
