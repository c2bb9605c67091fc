package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/logger"
	storetesting "github.com/rileyhilliard/tremor/internal/store/testing"
)

// stubMigrations records the store config each migration run gets.
func stubMigrations(t *testing.T, err error) *[]config.StoreConfig {
	t.Helper()
	var calls []config.StoreConfig
	prev := runMigrations
	runMigrations = func(_ context.Context, cfg config.StoreConfig, _ logger.Logger) error {
		calls = append(calls, cfg)
		return err
	}
	t.Cleanup(func() { runMigrations = prev })
	return &calls
}

func TestMigrateCommand(t *testing.T) {
	useConfig(t, sqliteConfig)
	st := storetesting.NewFakeStore()
	useFakeStore(t, st)
	calls := stubMigrations(t, nil)

	var buf bytes.Buffer
	require.NoError(t, migrateCommand(context.Background(), &buf))

	require.Len(t, *calls, 1)
	assert.Equal(t, config.DriverSQLite, (*calls)[0].Driver)
	assert.Equal(t, 1, st.PingCalls)
	assert.True(t, st.Closed)

	out := buf.String()
	assert.Contains(t, out, "Connecting to sqlite store")
	assert.Contains(t, out, "Creating table tremor_data")
	assert.Contains(t, out, "Schema ready")
}

func TestMigrateCommand_PingFails(t *testing.T) {
	useConfig(t, sqliteConfig)
	st := storetesting.NewFakeStore()
	st.PingErr = fmt.Errorf("database is locked")
	useFakeStore(t, st)
	calls := stubMigrations(t, nil)

	err := migrateCommand(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
	assert.Contains(t, err.Error(), "Store is unreachable")
	assert.Empty(t, *calls, "no migration without a reachable store")
}

func TestMigrateCommand_MigrationFails(t *testing.T) {
	useConfig(t, sqliteConfig)
	useFakeStore(t, storetesting.NewFakeStore())
	stubMigrations(t, fmt.Errorf("permission denied"))

	err := migrateCommand(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
	assert.Contains(t, err.Error(), "Migration failed")
}

func TestMigrateCommand_SkipsCustomPostgresTable(t *testing.T) {
	useConfig(t, "version: 1\nstore:\n  driver: pgx\n  dsn: postgres://u:p@localhost:5432/sensors\n  table: sensor_rows\n")
	useFakeStore(t, storetesting.NewFakeStore())
	calls := stubMigrations(t, nil)

	var buf bytes.Buffer
	require.NoError(t, migrateCommand(context.Background(), &buf))

	assert.Empty(t, *calls)
	assert.Contains(t, buf.String(), "SQL migrations only manage tremor_data")
	assert.Contains(t, buf.String(), "Create sensor_rows yourself")
}
