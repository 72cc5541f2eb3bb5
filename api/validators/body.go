package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// DecodeJSONBody parses and validates a JSON request body into dst. The body
// is size-capped and unknown fields are rejected.
func DecodeJSONBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]string{"decode": decodeErrorHint(err)})
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			details := map[string]string{}
			for _, fieldErr := range fieldErrors {
				details[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
			}
			return apperrors.New(apperrors.CodeValidation, "validation failed").WithDetails(details)
		}
		return apperrors.Wrap(apperrors.CodeValidation, err, "validation failed")
	}
	return nil
}

func decodeErrorHint(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("wrong type for field %q", typeErr.Field)
	case errors.Is(err, io.EOF):
		return "request body is empty"
	default:
		return err.Error()
	}
}
