package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/store"
	storetesting "github.com/rileyhilliard/tremor/internal/store/testing"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

func TestLatestCommand_Text(t *testing.T) {
	useConfig(t, sqliteConfig)
	st := storetesting.NewFakeStore(reading(7, true), reading(6, false))
	useFakeStore(t, st)

	var buf bytes.Buffer
	require.NoError(t, latestCommand(context.Background(), &buf, false))

	out := buf.String()
	assert.Contains(t, out, "Reading #7")
	assert.Contains(t, out, "▲ Tremor Detected")
	assert.Contains(t, out, "2.50")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, "72 BPM")
	assert.Contains(t, out, "1002")
	assert.True(t, st.Closed, "store is closed when the command returns")
}

func TestLatestCommand_JSON(t *testing.T) {
	useConfig(t, sqliteConfig)
	useFakeStore(t, storetesting.NewFakeStore(reading(7, false)))

	var buf bytes.Buffer
	require.NoError(t, latestCommand(context.Background(), &buf, true))

	var env struct {
		Success bool                `json:"success"`
		Data    tremor.SensorRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, int64(7), env.Data.ID)
	assert.False(t, env.Data.IsTremor)
	assert.True(t, env.Data.CreatedAt.Equal(reading(7, false).CreatedAt))
}

func TestLatestCommand_EmptyStore(t *testing.T) {
	useConfig(t, sqliteConfig)
	useFakeStore(t, storetesting.NewFakeStore())

	var buf bytes.Buffer
	err := latestCommand(context.Background(), &buf, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrQuery))
	assert.True(t, stderrors.Is(err, store.ErrNoRows))
	assert.Equal(t, ErrCodeNoReadings, ErrorToJSON(err).Code)
	assert.Empty(t, buf.String())
}

func TestLatestCommand_ConfigError(t *testing.T) {
	useConfig(t, "version: 1\nstore:\n  driver: oracle\n  dsn: x\n")
	st := storetesting.NewFakeStore(reading(1, false))
	useFakeStore(t, st)

	err := latestCommand(context.Background(), &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Zero(t, st.LatestCalls, "nothing is fetched with a bad config")
}

func TestRenderLatest_NoTremor(t *testing.T) {
	r := reading(3, false)
	r.GSR = 998.5

	out := renderLatest(r)
	assert.Contains(t, out, "✓ No Tremor")
	assert.Contains(t, out, "998.5")
	assert.Contains(t, out, "Accel intensity")
	assert.Contains(t, out, "0.50")
	assert.Contains(t, out, "1.25")
}
