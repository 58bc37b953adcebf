package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelogger/internal/config"
)

func TestTaskValidator_ValidateTaskName(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid name", "Emails", false, ""},
		{"Hidden name", ".Lunch", false, ""},
		{"Unicode name", "Überstunden", false, ""},
		{"Numeric name", "42", false, ""},
		{"Empty name", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Too long name", strings.Repeat("a", 256), true, ErrorTypeInvalidLength},
		{"Valid long name", strings.Repeat("a", 255), false, ""},
		{"Assignment delimiter", "a=b", true, ErrorTypeInvalidCharacter},
		{"Control character", "Task\t1", true, ErrorTypeInvalidCharacter},
		{"Malformed range", "9-25", true, ErrorTypeInvalidFormat},
		{"Malformed open range", "10:70-now", true, ErrorTypeInvalidFormat},
		{"Valid with hyphen", "code-review", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskName(tt.input)

			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.errorType, validationErr.Errors[0].Type)
		})
	}
}

func TestTaskValidator_WithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TaskNameMaxLength = 5
	validator := NewTaskValidatorWithConfig(cfg)

	assert.NoError(t, validator.ValidateTaskName("Mails"))
	assert.Error(t, validator.ValidateTaskName("Emails"))
}

func TestTaskValidator_GetValidTaskName(t *testing.T) {
	validator := NewTaskValidator()

	name, err := validator.GetValidTaskName("  Emails  ")
	require.NoError(t, err)
	assert.Equal(t, "Emails", name)

	name, err = validator.GetValidTaskName("")
	assert.Error(t, err)
	assert.Empty(t, name)
}
