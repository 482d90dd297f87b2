package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validator exposes the shared validator so packages can register custom rules.
func Validator() *validator.Validate {
	return validate
}

// DecodeAndValidate decodes a JSON request body into dest and runs struct validation.
// Failures are returned as *AppError values ready for WriteError.
func DecodeAndValidate(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		appErr := NewAppError("BAD_REQUEST", "invalid request body", http.StatusBadRequest, err)
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return appErr.WithDetails(map[string]any{"offset": syntaxErr.Offset})
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return NewAppError("PAYLOAD_TOO_LARGE", "request body too large", http.StatusRequestEntityTooLarge, err)
		}
		return appErr.WithDetails(map[string]any{"error": err.Error()})
	}
	return ValidateStruct(dest)
}

// DecodeOptional is DecodeAndValidate for endpoints whose body may be absent.
// An empty body, chunked or not, leaves dest at its zero value before validation.
func DecodeOptional(r *http.Request, dest any) error {
	err := DecodeAndValidate(r, dest)
	if errors.Is(err, io.EOF) {
		return ValidateStruct(dest)
	}
	return err
}

// ValidateStruct runs validator tags on v.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
		return NewAppError("VALIDATION_FAILED", "validation failed", http.StatusUnprocessableEntity, err).WithDetails(details)
	}
	return NewAppError("VALIDATION_FAILED", "validation failed", http.StatusUnprocessableEntity, err)
}

// fieldPath drops the top-level struct name so nested errors read as items[0].quantity.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid uuid"
	case "email":
		return "must be a valid email"
	case "dive":
		return "is invalid"
	}
	return "is invalid"
}
