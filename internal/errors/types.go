package errors

import (
	"fmt"
	"strings"
)

// ErrorType is the category of a failure. It decides the code and the
// message the shell prints.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStorage
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypePermission
)

var typeInfo = map[ErrorType]struct {
	name string
	code string
}{
	ErrorTypeValidation:   {"validation", "VALIDATION_FAILED"},
	ErrorTypeNotFound:     {"not_found", "NOT_FOUND"},
	ErrorTypeStorage:      {"storage", "STORAGE_ERROR"},
	ErrorTypeInvalidInput: {"invalid_input", "INVALID_INPUT"},
	ErrorTypeTimeout:      {"timeout", "TIMEOUT"},
	ErrorTypePermission:   {"permission", "PERMISSION_DENIED"},
}

func (et ErrorType) String() string {
	if info, ok := typeInfo[et]; ok {
		return info.name
	}
	return "unknown"
}

// Code is the stable identifier of the type, e.g. STORAGE_ERROR
func (et ErrorType) Code() string {
	if info, ok := typeInfo[et]; ok {
		return info.code
	}
	return "UNKNOWN_ERROR"
}

// AppError is a failure that crosses a package boundary. Op is what was being
// attempted ("save day", "open database"); Subject is the task, day, field or
// path involved, if any.
type AppError struct {
	Type    ErrorType
	Code    string
	Op      string
	Subject string
	Message string
	Cause   error
}

func newError(t ErrorType, op, subject, message string, cause error) *AppError {
	return &AppError{
		Type:    t,
		Code:    t.Code(),
		Op:      op,
		Subject: subject,
		Message: message,
		Cause:   cause,
	}
}

func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type and code, so callers can
// compare against a bare &AppError{Type: ..., Code: ...}.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}
