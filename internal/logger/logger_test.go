package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog points the standard logger at a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestEnvLogger_DebugGatedByEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		wantLog  bool
	}{
		{"set to 1", "1", true},
		{"any value", "true", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.envValue)

			NewEnvLogger("[dashboard]").Debug("stale poll response seq=%d", 3)

			if tt.wantLog {
				assert.Equal(t, "[dashboard] stale poll response seq=3\n", buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureLog(t)
	t.Setenv(DebugEnv, "")
	l := NewEnvLogger("[store]")

	l.Info("opened %s pool (max %d conns)", "pgx", 4)
	l.Warn("dropping malformed row id=%d", 7)
	l.Error("fetch latest: %v", "connection refused")

	assert.Equal(t,
		"[store] opened pgx pool (max 4 conns)\n"+
			"[store] WARN: dropping malformed row id=7\n"+
			"[store] ERROR: fetch latest: connection refused\n",
		buf.String())
}

func TestNoopLogger(t *testing.T) {
	buf := captureLog(t)
	t.Setenv(DebugEnv, "1")

	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Debug("tick epoch=%d", 2)
	l.Info("listening on %s", ":8080")
	l.Warn("dropping malformed row id=%d", 7)
	l.Error("fetch recent (limit %d): %s", 100, "timeout")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "tick epoch=2"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "info", Message: "listening on :8080"}, l.Messages[1])
	assert.Equal(t, LogMessage{Level: "warn", Message: "dropping malformed row id=7"}, l.Messages[2])
	assert.Equal(t, LogMessage{Level: "error", Message: "fetch recent (limit 100): timeout"}, l.Messages[3])
}

func TestBufferLogger_HasLevelAndContains(t *testing.T) {
	l := NewBufferLogger()
	assert.False(t, l.HasLevel("warn"))

	l.Warn("dropping malformed row id=%d", 7)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
	assert.True(t, l.Contains("warn", "malformed row"))
	assert.False(t, l.Contains("error", "malformed row"))
	assert.False(t, l.Contains("warn", "timeout"))

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.False(t, l.HasLevel("warn"))
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	assert.True(t, DebugEnabled())

	t.Setenv(DebugEnv, "")
	assert.False(t, DebugEnabled())
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	t.Cleanup(func() { defaultLogger = original })

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Same(t, buf, Default())
}
