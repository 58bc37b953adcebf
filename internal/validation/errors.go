package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType names the rule a field broke
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidFormat    ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidRange     ValidationErrorType = "invalid_range"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
)

// FieldError is one broken rule. Value holds the offending input as typed.
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   string
}

func (fe *FieldError) Error() string {
	return fe.Message
}

// ValidationError collects every rule a task name or day broke, so the
// shell can report them together instead of one per attempt.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: []FieldError{}}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	return fmt.Sprintf("%d validation errors: %s", len(ve.Errors), strings.Join(ve.messages(), "; "))
}

// UserMessage is the text shown to the person typing the command
func (ve *ValidationError) UserMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	return strings.Join(ve.messages(), "; ")
}

// HasErrors reports whether any rule was broken
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (ve *ValidationError) add(field string, kind ValidationErrorType, value string, format string, args ...interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    kind,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	})
}

// AddRequiredError records a missing field
func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, "", "%s is required", field)
}

// AddInvalidFormatError records a value that does not match expected
func (ve *ValidationError) AddInvalidFormatError(field, value, expected string) {
	ve.add(field, ErrorTypeInvalidFormat, value, "%s has invalid format, expected: %s", field, expected)
}

// AddInvalidLengthError records a value outside [min, max] characters.
// A zero bound is open.
func (ve *ValidationError) AddInvalidLengthError(field, value string, min, max int) {
	switch {
	case min > 0 && max > 0:
		ve.add(field, ErrorTypeInvalidLength, value, "%s must be between %d and %d characters long", field, min, max)
	case min > 0:
		ve.add(field, ErrorTypeInvalidLength, value, "%s must be at least %d characters long", field, min)
	case max > 0:
		ve.add(field, ErrorTypeInvalidLength, value, "%s must be at most %d characters long", field, max)
	default:
		ve.add(field, ErrorTypeInvalidLength, value, "%s has invalid length", field)
	}
}

// AddInvalidRangeError records a day outside the accepted window
func (ve *ValidationError) AddInvalidRangeError(field, value, reason string) {
	ve.add(field, ErrorTypeInvalidRange, value, "%s has invalid range: %s", field, reason)
}

// AddInvalidCharacterError records a name holding a delimiter or control character
func (ve *ValidationError) AddInvalidCharacterError(field, value string) {
	ve.add(field, ErrorTypeInvalidCharacter, value, "%s contains invalid characters", field)
}

func (ve *ValidationError) messages() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		out = append(out, fe.Message)
	}
	return out
}
