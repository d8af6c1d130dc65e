// Package validate runs `validate` struct tags through go-playground/validator
// and flattens failures into a field → message map keyed by JSON name.
//
//	type CreateProduct struct {
//	    Title string          `json:"title" validate:"required,max=255"`
//	    Price decimal.Decimal `json:"price" validate:"dgte=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
		_ = v.RegisterValidation("dgte", decimalGte)
	})
	return v
}

// Struct validates s and returns failures keyed by JSON field path.
// An empty map means s is valid.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(s)
	if err == nil {
		return errs
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		if _, seen := errs[key]; !seen {
			errs[key] = message(fe)
		}
	}
	return errs
}

func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "gte", "dgte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s must be a valid UUID.", field)
	case "dive":
		return fmt.Sprintf("The %s contains an invalid item.", field)
	}
	return fmt.Sprintf("The %s is invalid.", field)
}

// fieldPath drops the root struct name: "CreateProduct.extension.isbn" → "extension.isbn".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// decimalValue exposes decimals to validator as their string form so
// `required` treats the zero value as missing.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		if d.IsZero() {
			return ""
		}
		return d.String()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.String()
	}
	return nil
}

// decimalGte is `gte` for decimals: `dgte=0`.
func decimalGte(fl validator.FieldLevel) bool {
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}

	raw := fl.Field()
	if raw.Kind() == reflect.String {
		if raw.String() == "" {
			return bound.LessThanOrEqual(decimal.Zero)
		}
		d, err := decimal.NewFromString(raw.String())
		return err == nil && d.GreaterThanOrEqual(bound)
	}
	return true
}
