package normalization

import (
	"fmt"
	"strings"
)

// InvalidValueError reports input that matches no enum key.
type InvalidValueError struct {
	Enum    string
	Value   string
	Allowed []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %q, valid options: %s", e.Enum, e.Value, strings.Join(e.Allowed, ", "))
}

// EnumNormalizer is a Normalizer that knows the name of its enum, so
// configuration errors can say which option was wrong.
type EnumNormalizer[T comparable] struct {
	*Normalizer[T]
	name string
}

// NewEnumNormalizer creates an enum normalizer using the default key cleaning.
func NewEnumNormalizer[T comparable](name string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	return &EnumNormalizer[T]{Normalizer: NewNormalizer(values, defaultValue), name: name}
}

// NormalizeWithValidation converts raw to the enum value. Empty input yields
// the default; unknown input is an *InvalidValueError.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	if v, ok := e.lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, &InvalidValueError{Enum: e.name, Value: raw, Allowed: e.ValidKeys()}
}

// ValidValues returns the accepted keys, sorted.
func (e *EnumNormalizer[T]) ValidValues() []string { return e.ValidKeys() }
