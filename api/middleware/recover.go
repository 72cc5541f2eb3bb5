package middleware

import (
	"fmt"
	"net/http"

	"github.com/omerfq/stitchline-backend/api/responses"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

// Recoverer converts panics into a 500 envelope instead of dropping the
// connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := apperrors.Wrap(
						apperrors.CodeInternal,
						fmt.Errorf("panic: %v", rec),
						"unhandled panic",
					)
					responses.WriteError(r.Context(), w, logg, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
