package home

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// report fields by their json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest validates a request struct and reports the first failing
// field as ErrInvalidArgument.
func checkRequest(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalidArgument("%v", err)
	}

	fe := fieldErrs[0]
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "notblank":
		return invalidArgument("%s must not be empty", field)
	case "gt":
		return invalidArgument("%s must be positive", field)
	case "oneof":
		return invalidArgument("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return invalidArgument("%s needs at least %s entry", field, fe.Param())
	default:
		return invalidArgument("%s is invalid", field)
	}
}
