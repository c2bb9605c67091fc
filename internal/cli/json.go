package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/store"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeStoreUnreachable = "STORE_UNREACHABLE"
	ErrCodeNoReadings       = "NO_READINGS"
	ErrCodeMalformedReading = "MALFORMED_READING"
	ErrCodeQueryFailed      = "QUERY_FAILED"
	ErrCodeServeFailed      = "SERVE_FAILED"
	ErrCodeCommandFailed    = "COMMAND_FAILED"
	ErrCodeUnknown          = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var tErr *errors.Error
	if stderrors.As(err, &tErr) {
		out := &JSONError{
			Code:       mapErrorCode(tErr),
			Message:    tErr.Message,
			Suggestion: tErr.Suggestion,
		}
		if tErr.Cause != nil {
			out.Details = map[string]interface{}{"cause": tErr.Cause.Error()}
		}
		return out
	}

	var qErr *store.QueryError
	if stderrors.As(err, &qErr) {
		return &JSONError{
			Code:       queryErrorCode(qErr),
			Message:    qErr.Error(),
			Suggestion: doctorSuggestion,
			Details: map[string]interface{}{
				"op":    qErr.Op,
				"table": qErr.Table,
			},
		}
	}

	// Generic error
	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(tErr *errors.Error) string {
	switch tErr.Code {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(tErr.Message)
		if strings.Contains(msgLower, "not found") || strings.Contains(msgLower, "couldn't find") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrStore:
		return ErrCodeStoreUnreachable
	case errors.ErrQuery:
		var qErr *store.QueryError
		if stderrors.As(tErr, &qErr) {
			return queryErrorCode(qErr)
		}
		return ErrCodeQueryFailed
	case errors.ErrServe:
		return ErrCodeServeFailed
	case errors.ErrExec:
		return ErrCodeCommandFailed
	}

	return ErrCodeUnknown
}

func queryErrorCode(qErr *store.QueryError) string {
	switch {
	case stderrors.Is(qErr, store.ErrNoRows):
		return ErrCodeNoReadings
	case stderrors.Is(qErr, store.ErrMalformedRecord):
		return ErrCodeMalformedReading
	default:
		return ErrCodeQueryFailed
	}
}
