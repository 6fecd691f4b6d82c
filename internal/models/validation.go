package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("scenario", func(fl validator.FieldLevel) bool {
			return Scenario(fl.Field().String()).IsValid()
		})
		_ = validate.RegisterValidation("utf8text", func(fl validator.FieldLevel) bool {
			return utf8.ValidString(fl.Field().String())
		})
	})
	return validate
}

// FieldError names the first offending field of a failed struct validation.
type FieldError struct {
	Field string
	Rule  string
	Value any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s' failed rule '%s'", e.Field, e.Rule)
}

// Validate checks a model struct against its validate tags.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		first := errs[0]
		return &FieldError{
			Field: strings.ToLower(first.Field()),
			Rule:  first.Tag(),
			Value: first.Value(),
		}
	}
	return err
}
