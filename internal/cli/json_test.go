package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/store"
)

func decodeEnvelope(t *testing.T, buf *bytes.Buffer) JSONEnvelope {
	t.Helper()
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	return env
}

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"key": "value"}))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, nil))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
	assert.NotContains(t, buf.String(), `"data"`)
}

func TestWriteJSONError_AllFields(t *testing.T) {
	var buf bytes.Buffer
	details := map[string]string{"table": "tremor_data"}
	require.NoError(t, WriteJSONError(&buf, ErrCodeQueryFailed, "Query failed", "Run 'tremor doctor'", details))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeQueryFailed, env.Error.Code)
	assert.Equal(t, "Query failed", env.Error.Message)
	assert.Equal(t, "Run 'tremor doctor'", env.Error.Suggestion)

	detailsMap, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tremor_data", detailsMap["table"])
}

func TestWriteJSONFromError_StructuredError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(errors.ErrConfig, "Config file not found", "Run 'tremor init'")
	require.NoError(t, WriteJSONFromError(&buf, err))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	assert.Equal(t, ErrCodeConfigNotFound, env.Error.Code)
	assert.Equal(t, "Config file not found", env.Error.Message)
	assert.Equal(t, "Run 'tremor init'", env.Error.Suggestion)
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_GenericError(t *testing.T) {
	got := ErrorToJSON(stderrors.New("boom"))
	assert.Equal(t, ErrCodeUnknown, got.Code)
	assert.Equal(t, "boom", got.Message)
}

func TestErrorToJSON_InternalErrorCodes(t *testing.T) {
	tests := []struct {
		code    string
		message string
		want    string
	}{
		{errors.ErrConfig, "Config file not found", ErrCodeConfigNotFound},
		{errors.ErrConfig, "Couldn't find .tremor.yaml", ErrCodeConfigNotFound},
		{errors.ErrConfig, "store.driver 'oracle' isn't supported", ErrCodeConfigInvalid},
		{errors.ErrStore, "Couldn't open the pgx store", ErrCodeStoreUnreachable},
		{errors.ErrQuery, "Failed to read from the store", ErrCodeQueryFailed},
		{errors.ErrServe, "API server stopped", ErrCodeServeFailed},
		{errors.ErrExec, "Dashboard exited unexpectedly", ErrCodeCommandFailed},
		{"SOMETHING_ELSE", "?", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.message, func(t *testing.T) {
			got := ErrorToJSON(errors.New(tt.code, tt.message, ""))
			assert.Equal(t, tt.want, got.Code)
		})
	}
}

func TestErrorToJSON_QueryErrors(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  string
	}{
		{"no rows", store.ErrNoRows, ErrCodeNoReadings},
		{"malformed", fmt.Errorf("%w: gsr is NaN", store.ErrMalformedRecord), ErrCodeMalformedReading},
		{"failed", fmt.Errorf("%w: reset", store.ErrQueryFailed), ErrCodeQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qErr := &store.QueryError{Op: store.OpFetchRecent, Table: "tremor_data", Err: tt.cause}

			bare := ErrorToJSON(qErr)
			assert.Equal(t, tt.want, bare.Code)
			assert.Equal(t, doctorSuggestion, bare.Suggestion)
			details, ok := bare.Details.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, store.OpFetchRecent, details["op"])

			wrapped := ErrorToJSON(wrapQueryError(qErr))
			assert.Equal(t, tt.want, wrapped.Code, "code survives wrapping")
			assert.NotEmpty(t, wrapped.Suggestion)
		})
	}
}

func TestErrorToJSON_CauseInDetails(t *testing.T) {
	err := errors.WrapWithCode(stderrors.New("dial tcp: refused"), errors.ErrStore, "Store is unreachable", "")
	got := ErrorToJSON(err)

	details, ok := got.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dial tcp: refused", details["cause"])
}

func TestWriteJSONEnvelope_Formatting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]int{"n": 1}))

	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"success\": true"))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestErrorCodes_AreUnique(t *testing.T) {
	codes := []string{
		ErrCodeConfigNotFound, ErrCodeConfigInvalid, ErrCodeStoreUnreachable,
		ErrCodeNoReadings, ErrCodeMalformedReading, ErrCodeQueryFailed,
		ErrCodeServeFailed, ErrCodeCommandFailed, ErrCodeUnknown,
	}
	seen := make(map[string]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
		assert.Equal(t, strings.ToUpper(c), c)
	}
}
