package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"videotube/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return ValidateUsername(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("accountemail", func(fl validator.FieldLevel) bool {
			return ValidateEmail(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
			return models.ValidID(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates v against its `validate` tags. Failures are returned as a
// ValidationFailed AppError naming the first offending field.
func Struct(v interface{}) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError(err.Error())
	}
	return models.NewValidationError(describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "entityid":
		return field + " must be a valid id"
	case "username":
		return field + " is not a valid username"
	case "accountemail":
		return field + " is not a valid email"
	case "url":
		return field + " must be a URL"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
