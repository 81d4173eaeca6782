// Package validation wires go-playground/validator into echo so handlers can
// call c.Validate on bound request payloads.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is an input validation failure whose message is safe to show to
// the client. Services return it for rejected input; any other error a
// service surfaces is treated as internal.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds an *Error from a format string.
func Errorf(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether err is or wraps a validation Error.
func IsError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterValidation("sex", sexValidator)
	return &Validator{validate: v}
}

// Validate checks a bound struct against its `validate` tags. Errors are
// flattened into a single human-readable message suitable for the JSON
// error envelope.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return &Error{Message: strings.Join(msgs, "; ")}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "sex":
		return fmt.Sprintf("%s must be Male or Female", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func sexValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "Male" || value == "Female"
}
