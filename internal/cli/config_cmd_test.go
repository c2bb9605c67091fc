package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
)

func TestConfigSetCommand(t *testing.T) {
	path := useConfig(t, sqliteConfig)

	var buf bytes.Buffer
	require.NoError(t, configSetCommand(&buf, "dashboard.poll_interval", "2s"))
	assert.Contains(t, buf.String(), "Set dashboard.poll_interval in "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.PollInterval)
	assert.Equal(t, 50, cfg.Dashboard.HistoryLimit, "other keys are preserved")
}

func TestConfigSetCommand_CreatesMissingSection(t *testing.T) {
	path := useConfig(t, sqliteConfig)

	require.NoError(t, configSetCommand(&bytes.Buffer{}, "server.addr", ":9090"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestConfigSetCommand_InvalidResult(t *testing.T) {
	useConfig(t, sqliteConfig)

	err := configSetCommand(&bytes.Buffer{}, "store.driver", "oracle")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "no longer valid")
}

func TestConfigSetCommand_BadKey(t *testing.T) {
	useConfig(t, sqliteConfig)

	err := configSetCommand(&bytes.Buffer{}, "store", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Couldn't set store")
}

func TestConfigSetCommand_NoConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	prev := cfgFile
	cfgFile = ""
	t.Cleanup(func() { cfgFile = prev })

	err = configSetCommand(&bytes.Buffer{}, "store.dsn", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No config file found")

	var buf bytes.Buffer
	require.NoError(t, configPathCommand(&buf))
	assert.Contains(t, buf.String(), "TREMOR_* environment variables")
}

func TestConfigPathCommand(t *testing.T) {
	path := useConfig(t, sqliteConfig)

	var buf bytes.Buffer
	require.NoError(t, configPathCommand(&buf))
	assert.Equal(t, path+"\n", buf.String())
}

func TestConfigPathCommand_MissingExplicitFile(t *testing.T) {
	prev := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = prev })

	assert.Error(t, configPathCommand(&bytes.Buffer{}))
}
