package validation

import (
	"time"

	"timelogger/internal/config"
	"timelogger/internal/repository"
)

// DayValidator validates the day a ledger is opened on
type DayValidator struct {
	validator *Validator
}

// NewDayValidator creates a new day validator
func NewDayValidator() *DayValidator {
	return &DayValidator{
		validator: NewValidator(),
	}
}

// NewDayValidatorWithConfig creates a day validator using configured limits
func NewDayValidatorWithConfig(cfg *config.Config) *DayValidator {
	return &DayValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateDayKey checks the YYYY-MM-DD form of key
func (dv *DayValidator) ValidateDayKey(key string) error {
	validationError := NewValidationError()

	trimmed := dv.validator.TrimAndValidateString(key)
	if !dv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("date")
		return validationError
	}

	if !dv.validator.IsValidDayKey(trimmed) {
		validationError.AddInvalidFormatError("date", trimmed, repository.DayKeyLayout)
		return validationError
	}
	return nil
}

// ValidateDay checks that day is neither far in the past nor in the future
// by more than a year, relative to now.
func (dv *DayValidator) ValidateDay(day, now time.Time) error {
	if day.IsZero() {
		validationError := NewValidationError()
		validationError.AddRequiredError("date")
		return validationError
	}
	if !dv.validator.IsReasonableDay(day, now) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("date", repository.DayKey(day), "must be within reasonable date range")
		return validationError
	}
	return nil
}
