package payload

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
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
	return v
}

// checkStruct runs the validator on rules and reports the first failure as a
// validation error.
func checkStruct(rules any) error {
	return asValidation(validate.Struct(rules), "")
}

// checkVar validates a single value under the given field name.
func checkVar(field string, value any, tag string) error {
	return asValidation(validate.Var(value, tag), field)
}

func asValidation(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Upstream("validate input", err)
	}
	fe := verrs[0]
	name := field
	if name == "" {
		name = fe.Field()
	}
	return apperr.Validation("%s", message(name, fe))
}

func message(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	}
	return fmt.Sprintf("%s is invalid", name)
}

func checkNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperr.Validation("%s must be at least 0", field)
	}
	return nil
}
