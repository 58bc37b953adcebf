package cli

import (
	"fmt"

	"timelogger/internal/errors"
	"timelogger/internal/logging"
	"timelogger/internal/validation"
)

// ErrorHandler turns failures from the ledger and stores into one-line messages
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message with the operation that failed
func (eh *ErrorHandler) Handle(operation string, err error) error {
	err = eh.classify(err)
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple returns just the user message, for the shell's notice line
func (eh *ErrorHandler) HandleSimple(err error) error {
	err = eh.classify(err)
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}
	return err
}

// classify lifts field validation failures into AppErrors and logs the
// detail of failures the user cannot fix by retyping.
func (eh *ErrorHandler) classify(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.UserMessage(), ve)
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("error [%s]: %v\n", errors.GetErrorCode(err), err)
	}
	return err
}
