package scoring

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidatePreferences returns *InvalidPreferencesError when any field is out
// of range, non-finite or not one of its enum values.
func ValidatePreferences(p UserPreferences) error {
	violations, err := check(p)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &InvalidPreferencesError{Violations: violations}
	}
	return nil
}

func ValidateBreed(b Breed) error {
	violations, err := check(b)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &InvalidBreedError{Name: b.Name, Violations: violations}
	}
	return nil
}

// ValidateCatalog stops at the first invalid breed.
func ValidateCatalog(catalog []Breed) error {
	for _, b := range catalog {
		if err := ValidateBreed(b); err != nil {
			return err
		}
	}
	return nil
}

func check(s interface{}) ([]FieldViolation, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate: %w", err)
	}

	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{
			Field:  fe.Field(),
			Value:  fe.Value(),
			Reason: describe(fe),
		})
	}
	return out, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "gte":
		return "must be >= " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
