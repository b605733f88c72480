// Package foundation holds small generic building blocks shared by the
// configuration layer.
package foundation

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{Valid: false, Errors: errs}
}

// NewFieldError creates a field error.
func NewFieldError(field, code, message string) FieldError {
	return FieldError{Field: field, Code: code, Message: message}
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}

	all := make([]FieldError, 0, len(vr.Errors)+len(other.Errors))
	all = append(all, vr.Errors...)
	all = append(all, other.Errors...)
	return Invalid(all...)
}

// ToError converts an invalid result into a configuration error listing every
// failing field.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	fields := make([]string, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		messages = append(messages, fe.Error())
		if fe.Field != "" {
			fields = append(fields, fe.Field)
		}
	}

	b := errors.ConfigError("invalid configuration: " + strings.Join(messages, "; "))
	if len(fields) > 0 {
		b = b.WithContext("fields", strings.Join(fields, ","))
	}
	return b.Build()
}

// ValidatorChain runs several validators against the same value.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain and collects every failure.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()
	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}
	return result
}

// Check adapts a predicate over T into a Validator reporting field on failure.
func Check[T any](field, code, message string, ok func(T) bool) Validator[T] {
	return func(value T) ValidationResult {
		if ok(value) {
			return Valid()
		}
		return Invalid(NewFieldError(field, code, message))
	}
}
