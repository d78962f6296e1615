// Package validation checks request structs against their `validate` tags and
// reports failures as an *apperr.ValidationError keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("has_upper", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsUpper) >= 0
	})
	_ = v.RegisterValidation("has_digit", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsDigit) >= 0
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return !math.IsInf(f, 0) && !math.IsNaN(f)
		}
		return true
	})
	return v
}

// Struct validates s. It returns nil or an *apperr.ValidationError.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &apperr.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return out
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		if fe.Param() == "0" {
			return "must not be negative"
		}
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must contain at least " + fe.Param() + " entries"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "has_upper":
		return "must contain an uppercase letter"
	case "has_digit":
		return "must contain a number"
	case "finite":
		return "must be a finite number"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
