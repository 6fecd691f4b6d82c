package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			require.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "context"))
	assert.NoError(t, WrapErrorf(nil, "context %d", 1))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("disk full")
	err := WrapErrorf(base, "writing %s", "history.db")
	assert.Equal(t, "writing history.db: disk full", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("text", "", "text cannot be empty")

	assert.Equal(t, "validation failed for field 'text': text cannot be empty (value: )", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	wrapped := fmt.Errorf("request rejected: %w", err)
	ve, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "text", ve.Field)

	_, ok = AsValidationError(errors.New("plain"))
	assert.False(t, ok)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("correction_config", "api_key", "missing"),
			expected: "configuration error in section 'correction_config', field 'api_key': missing",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("history_config", "", "bad path"),
			expected: "configuration error in section 'history_config': bad path",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "broken"),
			expected: "configuration error: broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}
