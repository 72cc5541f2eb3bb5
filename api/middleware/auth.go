package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/omerfq/stitchline-backend/api/responses"
	"github.com/omerfq/stitchline-backend/pkg/auth"
	"github.com/omerfq/stitchline-backend/pkg/config"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

// Auth guards admin routes with a Bearer JWT.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				responses.WriteError(r.Context(), w, logg, apperrors.New(apperrors.CodeUnauthorized, "missing authorization header"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				responses.WriteError(r.Context(), w, logg, apperrors.New(apperrors.CodeUnauthorized, "malformed authorization header"))
				return
			}

			claims, err := auth.ParseAccessToken(cfg, parts[1])
			if err != nil {
				responses.WriteError(r.Context(), w, logg, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid access token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = logg.WithUserID(ctx, claims.UserID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
