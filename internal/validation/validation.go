package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New builds the validator used for all request bodies. Error messages use
// the json field names. The "password" tag is strict (upper, lower, digit
// and symbol required) or a no-op depending on deployment configuration;
// length bounds are always enforced by the min/max tags.
func New(strictPassword bool) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		if !strictPassword {
			return true
		}
		return passwordStrong(fl.Field().String())
	})

	return v
}

func passwordStrong(s string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// FirstError converts a validation failure into the message for the first
// violated field. validator reports fields in struct declaration order, so
// the message is deterministic for a given schema.
func FirstError(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field() + " " + fieldMessage(fe)
	}
	return "Invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or greater"
	case "password":
		return "must contain an uppercase letter, a lowercase letter, a digit and a symbol"
	default:
		return "is invalid"
	}
}
