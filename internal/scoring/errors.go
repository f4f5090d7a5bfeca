package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCatalog is returned by Recommend when there is nothing to rank.
var ErrEmptyCatalog = errors.New("breed catalog is empty")

type FieldViolation struct {
	Field  string      `json:"field"`
	Value  interface{} `json:"value"`
	Reason string      `json:"reason"`
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s %s (got %v)", v.Field, v.Reason, v.Value)
}

// InvalidPreferencesError reports every field of a UserPreferences record
// that is out of range or holds an unknown enum value.
type InvalidPreferencesError struct {
	Violations []FieldViolation
}

func (e *InvalidPreferencesError) Error() string {
	return "invalid preferences: " + joinViolations(e.Violations)
}

// InvalidBreedError is the catalog-side counterpart of InvalidPreferencesError.
type InvalidBreedError struct {
	Name       string
	Violations []FieldViolation
}

func (e *InvalidBreedError) Error() string {
	return fmt.Sprintf("invalid breed %q: %s", e.Name, joinViolations(e.Violations))
}

func joinViolations(vs []FieldViolation) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}
