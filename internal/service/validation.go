package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"boardcamp-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	cpfPattern   = regexp.MustCompile(`^[0-9]{11}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpfPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// validateInput runs the struct tags of in and reports every failing field as
// one ErrInvalidInput.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.InvalidInputf("%v", err)
	}
	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, fieldReason(fe))
	}
	return domain.InvalidInputf("%s", strings.Join(reasons, "; "))
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "phone":
		return fmt.Sprintf("%s must have 10 or 11 digits", fe.Field())
	case "cpf":
		return fmt.Sprintf("%s must have exactly 11 digits", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be a valid YYYY-MM-DD date", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
