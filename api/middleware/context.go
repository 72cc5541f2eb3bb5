package middleware

import (
	"context"

	"github.com/omerfq/stitchline-backend/pkg/auth"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	cartTokenKey contextKey = "cart_token"
	claimsKey    contextKey = "admin_claims"
)

// RequestIDFromContext returns the request id attached by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// CartTokenFromContext returns the guest cart token attached by CartToken.
func CartTokenFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(cartTokenKey).(string); ok {
		return value
	}
	return ""
}

// ClaimsFromContext returns the admin JWT claims attached by Auth.
func ClaimsFromContext(ctx context.Context) *auth.AccessTokenClaims {
	if value, ok := ctx.Value(claimsKey).(*auth.AccessTokenClaims); ok {
		return value
	}
	return nil
}
