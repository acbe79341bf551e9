// Package normalization maps loosely written names (config values, mode
// names) onto typed enum values.
package normalization

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
)

// EnumNormalizer converts trimmed, case-insensitive names into enum values.
// Several aliases may map to the same value.
type EnumNormalizer[T comparable] struct {
	enumName     string
	values       map[string]T
	defaultValue T
	validKeys    []string
}

// NewEnumNormalizer creates a normalizer for the named enum. defaultValue is
// returned by Normalize for unrecognized input.
func NewEnumNormalizer[T comparable](enumName string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[clean(k)] = v
	}
	keys := make([]string, 0, len(normalized))
	for k := range normalized {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return &EnumNormalizer[T]{
		enumName:     enumName,
		values:       normalized,
		defaultValue: defaultValue,
		validKeys:    keys,
	}
}

// Normalize returns the value for raw, or the default when raw is unknown.
func (e *EnumNormalizer[T]) Normalize(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.defaultValue
}

// NormalizeWithValidation returns the value for raw, or a validation error
// listing the accepted names.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	if v, ok := e.values[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, errors.ValidationError("invalid "+e.enumName).
		WithContext("value", raw).
		WithContext("valid", strings.Join(e.validKeys, "|")).
		Build()
}

// ValidValues returns the accepted names, sorted.
func (e *EnumNormalizer[T]) ValidValues() []string {
	return slices.Clone(e.validKeys)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
