package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization with error handling.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string
	clean        Func
}

// Func allows custom normalization behavior.
type Func func(string) string

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
// Keys are cleaned with the default normalization (trim, lowercase, "_" and " " to "-").
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	return WithCustomNormalizer(values, defaultValue, defaultNormalization)
}

// WithCustomNormalizer creates a normalizer with custom string normalization.
func WithCustomNormalizer[T comparable](values map[string]T, defaultValue T, clean Func) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
		clean:        clean,
	}
}

// Normalize converts a string to the enum type, falling back to the default.
// The empty string always yields the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, exists := n.validValues[n.clean(raw)]; exists {
		return value
	}
	return n.defaultValue
}

// NormalizeWithError converts a string to the enum type. Empty input yields the
// default without error; unknown input is an error listing the valid keys.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if value, ok := n.lookup(raw); ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %s", raw, strings.Join(n.validKeys, ", "))
}

// lookup resolves raw. Blank input maps to the default.
func (n *Normalizer[T]) lookup(raw string) (T, bool) {
	cleaned := n.clean(raw)
	if cleaned == "" {
		return n.defaultValue, true
	}
	value, ok := n.validValues[cleaned]
	return value, ok
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func defaultNormalization(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}
