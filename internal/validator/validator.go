package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired = "is required"
	ErrEmail    = "must be a valid email address"
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
	ErrGtValue  = "must be greater than %s"
	ErrPhone    = "must be a valid phone number"
	ErrInvalid  = "is invalid"
)

var phoneRgx = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{5,19}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("phone", validatePhone)

	return validator
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min", "gte":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGtValue, err.Param())
	case "phone":
		return ErrPhone
	default:
		return ErrInvalid
	}
}
