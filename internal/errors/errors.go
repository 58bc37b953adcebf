package errors

import (
	"errors"
	"fmt"
)

// NewValidationError reports input that broke a rule; message is shown as is
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "validate", "", message, cause)
}

// NewNotFoundError reports a reference, such as a command name, that matches nothing
func NewNotFoundError(kind, ref string) *AppError {
	return newError(ErrorTypeNotFound, "lookup "+kind, ref, fmt.Sprintf("%s not found: %s", kind, ref), nil)
}

// NewStorageError wraps a failure of the backing store, whatever the medium.
func NewStorageError(operation string, cause error) *AppError {
	return newError(ErrorTypeStorage, operation, "", "storage operation failed: "+operation, cause)
}

// NewInvalidInputError reports a bad argument or setting
func NewInvalidInputError(field, value, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "parse "+field, value, fmt.Sprintf("invalid input for %s: %s", field, reason), nil)
}

// NewTimeoutError reports an operation that ran past its context deadline
func NewTimeoutError(operation string, cause error) *AppError {
	return newError(ErrorTypeTimeout, operation, "", "operation timed out: "+operation, cause)
}

// NewPermissionError reports a path the process may not create or write
func NewPermissionError(operation, path string) *AppError {
	return newError(ErrorTypePermission, operation, path, fmt.Sprintf("permission denied for %s on %s", operation, path), nil)
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of type t
func IsErrorType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == t
}

// GetUserMessage returns the line printed for err. Store failures hide the
// driver detail, which is logged instead.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeStorage:
		return fmt.Sprintf("the time log could not be read or written (%s)", appErr.Op)
	case ErrorTypeTimeout:
		return fmt.Sprintf("%s timed out, please try again", appErr.Op)
	default:
		return appErr.Message
	}
}

// GetErrorCode returns the code of the first AppError in err's chain
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for mistakes in what the user typed and true for
// failures of the system underneath.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	}
	return true
}
