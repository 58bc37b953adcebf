package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"timelogger/internal/config"
	"timelogger/internal/repository"
)

// Validator provides common validation utilities
type Validator struct {
	rangeLikeRegex *regexp.Regexp
	config         *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		rangeLikeRegex: regexp.MustCompile(`^[0-9:]+-([0-9:]+|now)$`),
		config:         cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}

// IsValidTaskNameLength checks if a task name length is within configured limits
func (v *Validator) IsValidTaskNameLength(name string) bool {
	return v.IsValidStringLength(name, v.getTaskNameMinLength(), v.getTaskNameMaxLength())
}

// IsValidTaskName rejects control characters and the '=' that joins
// compound commands.
func (v *Validator) IsValidTaskName(name string) bool {
	for _, r := range name {
		if r == '=' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// LooksLikeTimeRange reports whether s is shaped like a range without
// being a valid one, e.g. "9-25" or "10:70-now".
func (v *Validator) LooksLikeTimeRange(s string) bool {
	return v.rangeLikeRegex.MatchString(s)
}

// IsValidDayKey checks that key is a calendar day in YYYY-MM-DD form
func (v *Validator) IsValidDayKey(key string) bool {
	_, err := repository.ParseDayKey(key)
	return err == nil
}

// IsReasonableDay checks that day lies within the configured window around now
func (v *Validator) IsReasonableDay(day, now time.Time) bool {
	earliest := now.AddDate(-v.getMaxYearsBack(), 0, 0)
	latest := now.AddDate(1, 0, 0)
	return day.After(earliest) && day.Before(latest)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) getTaskNameMinLength() int {
	if v.config != nil {
		return v.config.Validation.TaskNameMinLength
	}
	return 1
}

func (v *Validator) getTaskNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TaskNameMaxLength
	}
	return 255
}

func (v *Validator) getMaxYearsBack() int {
	if v.config != nil {
		return v.config.Validation.MaxYearsBack
	}
	return 10
}
