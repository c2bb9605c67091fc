package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	storetesting "github.com/rileyhilliard/tremor/internal/store/testing"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

func init() {
	// Plain output so rendered text can be matched
	lipgloss.SetColorProfile(termenv.Ascii)
}

var testStart = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

const sqliteConfig = `version: 1
store:
  driver: sqlite
  dsn: %DSN%
  table: tremor_data
  query_timeout: 2s
dashboard:
  history_limit: 50
  event_log_limit: 3
`

// useConfig writes content to a temp .tremor.yaml and points --config at it.
// %DSN% is replaced with a path inside the temp dir.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TREMOR_STORE_DSN", "")
	t.Setenv("TREMOR_STORE_DRIVER", "")

	content = strings.ReplaceAll(content, "%DSN%", filepath.Join(dir, "readings.db"))
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })
	return path
}

// useFakeStore makes every command open st instead of a real store.
func useFakeStore(t *testing.T, st *storetesting.FakeStore) {
	t.Helper()
	prevOpen, prevStatus := openStore, statusOut
	openStore = func(context.Context, config.StoreConfig, logger.Logger) (store.Store, error) {
		return st, nil
	}
	statusOut = io.Discard
	t.Cleanup(func() {
		openStore = prevOpen
		statusOut = prevStatus
	})
}

// reading builds a record; every reading is one second after the previous id.
func reading(id int64, isTremor bool) tremor.SensorRecord {
	return tremor.SensorRecord{
		ID:             id,
		CreatedAt:      testStart.Add(time.Duration(id) * time.Second),
		AccelRMS:       2.5,
		GyroRMS:        40,
		AccelIntensity: 0.5,
		GyroIntensity:  1.25,
		AvgBPM:         72,
		GSR:            1002,
		IsTremor:       isTremor,
	}
}

// newestFirst returns readings n..1.
func newestFirst(n int, tremorEvery int64) []tremor.SensorRecord {
	out := make([]tremor.SensorRecord, 0, n)
	for id := int64(n); id >= 1; id-- {
		out = append(out, reading(id, tremorEvery > 0 && id%tremorEvery == 0))
	}
	return out
}
