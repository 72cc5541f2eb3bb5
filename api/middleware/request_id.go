package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/omerfq/stitchline-backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an id, honoring an inbound header, and binds
// it to the context logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			ctx = logg.WithRequestID(ctx, requestID)
			w.Header().Set(requestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
