package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation failed", NewValidationError().Error())

	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	assert.Equal(t, "task_name is required", ve.Error())

	ve.AddInvalidFormatError("date", "2026-13-01", "2006-01-02")
	assert.Equal(t, "2 validation errors: task_name is required; date has invalid format, expected: 2006-01-02", ve.Error())
}

func TestValidationError_AddHelpers(t *testing.T) {
	tests := []struct {
		name      string
		add       func(ve *ValidationError)
		wantType  ValidationErrorType
		wantValue string
		contains  string
	}{
		{
			name:     "required",
			add:      func(ve *ValidationError) { ve.AddRequiredError("task_name") },
			wantType: ErrorTypeRequired,
			contains: "task_name is required",
		},
		{
			name:      "format",
			add:       func(ve *ValidationError) { ve.AddInvalidFormatError("date", "2026-13-01", "2006-01-02") },
			wantType:  ErrorTypeInvalidFormat,
			wantValue: "2026-13-01",
			contains:  "2006-01-02",
		},
		{
			name:     "length with both bounds",
			add:      func(ve *ValidationError) { ve.AddInvalidLengthError("task_name", "", 1, 255) },
			wantType: ErrorTypeInvalidLength,
			contains: "between 1 and 255",
		},
		{
			name:      "length with upper bound only",
			add:       func(ve *ValidationError) { ve.AddInvalidLengthError("task_name", "abc", 0, 2) },
			wantType:  ErrorTypeInvalidLength,
			wantValue: "abc",
			contains:  "at most 2",
		},
		{
			name:      "range",
			add:       func(ve *ValidationError) { ve.AddInvalidRangeError("date", "1990-01-01", "too old") },
			wantType:  ErrorTypeInvalidRange,
			wantValue: "1990-01-01",
			contains:  "too old",
		},
		{
			name:      "character",
			add:       func(ve *ValidationError) { ve.AddInvalidCharacterError("task_name", "a\tb") },
			wantType:  ErrorTypeInvalidCharacter,
			wantValue: "a\tb",
			contains:  "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.add(ve)

			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.wantType, ve.Errors[0].Type)
			assert.Equal(t, tt.wantValue, ve.Errors[0].Value)
			assert.Contains(t, ve.Errors[0].Message, tt.contains)
			assert.Equal(t, ve.Errors[0].Message, ve.Errors[0].Error())
		})
	}
}

func TestValidationError_UserMessage(t *testing.T) {
	assert.Equal(t, "input validation failed", NewValidationError().UserMessage())

	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	assert.Equal(t, "task_name is required", ve.UserMessage())

	ve.AddRequiredError("date")
	assert.Equal(t, "task_name is required; date is required", ve.UserMessage())
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("rename: %w", ve)))
	assert.False(t, IsValidationError(&FieldError{Field: "test", Message: "error"}))
	assert.False(t, IsValidationError(nil))
}

func TestNewValidationError(t *testing.T) {
	ve := NewValidationError()

	require.NotNil(t, ve)
	assert.NotNil(t, ve.Errors)
	assert.False(t, ve.HasErrors())
}
