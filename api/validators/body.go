package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as their json tags so details match the wire format.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})

	return v
}

// DecodeJSONBody strictly decodes the request body into dst and runs struct
// validation. Failures come back as validation errors with per-field details.
func DecodeJSONBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, err, "malformed request body").
			WithDetails(decodeErrorDetail(err))
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.New(apperrors.CodeValidation, "request body must contain a single JSON object").
			WithDetails("unexpected trailing data")
	}

	return ValidateStruct(dst)
}

// ValidateStruct runs tag validation on an already-decoded value.
func ValidateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fieldErrorMessage(fe)
		}
		return apperrors.Wrap(apperrors.CodeValidation, err, "invalid request body").
			WithDetails(details)
	}
	return apperrors.Wrap(apperrors.CodeValidation, err, "invalid request body")
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func decodeErrorDetail(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("invalid type for field %q", typeErr.Field)
	case errors.As(err, &maxBytesErr):
		return "request body too large"
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return strings.TrimPrefix(err.Error(), "json: ")
	default:
		return "could not parse request body"
	}
}
