package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/omerfq/stitchline-backend/pkg/logger"
)

const (
	cartTokenHeader = "X-Cart-Token"
	cartTokenCookie = "sl_cart_token"
)

// CartToken resolves the guest cart token from header or cookie, minting a
// fresh one when absent. The token is echoed on both so browser and
// non-browser clients can hold on to it.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(cartTokenHeader)
			if token == "" {
				if cookie, err := r.Cookie(cartTokenCookie); err == nil {
					token = cookie.Value
				}
			}
			if _, err := uuid.Parse(token); err != nil {
				token = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cartTokenCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 30,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(cartTokenHeader, token)

			ctx := context.WithValue(r.Context(), cartTokenKey, token)
			ctx = logg.WithCartToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
