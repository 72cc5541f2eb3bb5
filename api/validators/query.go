package validators

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

// QueryInt reads an optional integer query parameter, returning fallback when
// absent.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeValidation, "invalid query parameter").
			WithDetails(map[string]string{name: "must be an integer"})
	}
	return value, nil
}

// QueryBool reads an optional boolean query parameter, nil when absent.
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid query parameter").
			WithDetails(map[string]string{name: "must be a boolean"})
	}
	return &value, nil
}

// QueryUUID reads an optional UUID query parameter, nil when absent.
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid query parameter").
			WithDetails(map[string]string{name: "must be a UUID"})
	}
	return &value, nil
}

// PathUUID parses a required UUID path segment.
func PathUUID(raw string, name string) (uuid.UUID, error) {
	value, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.CodeValidation, "invalid path parameter").
			WithDetails(map[string]string{name: "must be a UUID"})
	}
	return value, nil
}
