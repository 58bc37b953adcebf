package validation

import (
	"timelogger/internal/config"
	"timelogger/internal/domain"
)

// TaskValidator validates task names before the ledger creates or renames a task
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskName validates a name for a new or renamed task
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)
	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("task_name")
		return validationError
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		validationError.AddInvalidLengthError("task_name", trimmedName,
			tv.validator.getTaskNameMinLength(), tv.validator.getTaskNameMaxLength())
	}

	if !tv.validator.IsValidTaskName(trimmedName) {
		validationError.AddInvalidCharacterError("task_name", trimmedName)
	}

	// "a=9-25" would otherwise rename a to "9-25"
	if tv.validator.LooksLikeTimeRange(trimmedName) && !domain.IsValidRange(trimmedName) {
		validationError.AddInvalidFormatError("task_name", trimmedName,
			"a time range like 9-17 or 9:30-now, or a name not shaped like one")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}
