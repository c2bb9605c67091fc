package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrStore,
		ErrQuery,
		ErrServe,
		ErrExec,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .tremor.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "store error",
			code:       ErrStore,
			message:    "Cannot connect to the sensor store",
			suggestion: "Run 'tremor doctor' to diagnose connection issues",
		},
		{
			name:       "query error",
			code:       ErrQuery,
			message:    "Failed to fetch latest data",
			suggestion: "Check the table name in your config",
		},
		{
			name:       "serve error",
			code:       ErrServe,
			message:    "Address already in use",
			suggestion: "Pick another --addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Invalid configuration", "Check .tremor.yaml syntax"),
			expectedParts: []string{
				"Invalid configuration",
				"Check .tremor.yaml syntax",
			},
		},
		{
			name: "error with failure symbol",
			err:  New(ErrStore, "Connection failed", "Try again"),
			expectedParts: []string{
				"✗",
				"Connection failed",
			},
		},
		{
			name: "error without suggestion",
			err:  New(ErrExec, "Command failed", ""),
			expectedParts: []string{
				"Command failed",
			},
			notExpected: []string{
				"\n\n  \n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part, "output should contain %q", part)
			}

			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part, "output should not contain %q", part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "Store unreachable")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrStore, wrapped.Code, "Wrap should default to ErrStore code")
	assert.Equal(t, "Store unreachable", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrConfig, "Failed to load config", "Run 'tremor init'")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code)
	assert.Equal(t, "Failed to load config", wrapped.Message)
	assert.Equal(t, "Run 'tremor init'", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrQuery, "Query error", "")

	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, cause, wrapped.Unwrap())

	var tErr *Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", wrapped), &tErr))
	assert.Equal(t, ErrQuery, tErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrStore))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
	assert.True(t, IsCode(fmt.Errorf("wrapped: %w", err), ErrConfig))
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "", Headline(nil))
	assert.Equal(t, "Store unreachable",
		Headline(WrapWithCode(errors.New("dial tcp: refused"), ErrStore, "Store unreachable", "Check DSN")))
	assert.Equal(t, "plain failure", Headline(errors.New("plain failure\nsecond line")))
	assert.Equal(t, "Bad thing", Headline(errors.New("✗ Bad thing\n\n  cause")))
}
