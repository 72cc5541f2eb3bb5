package responses

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/logger"
)

// SuccessEnvelope is the wire shape of every 2xx payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Details only appear for codes whose
// metadata allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under the "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// WriteJSON serializes payload with the given status. A failed encode is
// silently dropped since headers are already out.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteSuccess wraps data in the success envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, SuccessEnvelope{Data: data})
}

// WriteError maps any error to the error envelope. Coded errors carry their
// own HTTP metadata; everything else becomes an internal error. Server-side
// failures are logged with the full error dump.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	code := apperrors.CodeInternal
	message := ""
	var details any

	if typed := apperrors.As(err); typed != nil {
		code = typed.Code()
		message = typed.Message()
		details = typed.Details()
	}

	meta := apperrors.MetadataFor(code)
	if message == "" {
		message = meta.PublicMessage
	}
	if !meta.DetailsAllowed {
		details = nil
	}

	if meta.HTTPStatus >= http.StatusInternalServerError && logg != nil {
		logg.Error(logg.WithField(ctx, "error_dump", apperrors.Dump(err)), "request failed", err)
	}

	WriteJSON(w, meta.HTTPStatus, ErrorEnvelope{
		Error: APIError{
			Code:    string(code),
			Message: message,
			Details: details,
		},
	})
}
