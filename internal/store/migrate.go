package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrCustomTable is returned when SQL migrations are asked to manage a table
// other than the one they create.
var ErrCustomTable = errors.New("sql migrations only create the default table")

// Migrate creates the readings schema for local development. It never
// inserts rows. pgx and postgres use the embedded SQL migrations; mysql and
// sqlite use gorm AutoMigrate against the configured table.
func Migrate(ctx context.Context, cfg config.StoreConfig, log logger.Logger) error {
	if log == nil {
		log = logger.Noop()
	}
	if !config.IsValidTableName(cfg.Table) {
		return fmt.Errorf("invalid table name %q", cfg.Table)
	}

	switch cfg.Driver {
	case config.DriverPgx, config.DriverPostgres, "":
		return migrateSQL(ctx, cfg, log)
	case config.DriverMySQL, config.DriverSQLite:
		return migrateGorm(ctx, cfg, log)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}

// ManagesTable reports whether Migrate can create cfg's table. The embedded
// SQL migrations are fixed to the default table name.
func ManagesTable(cfg config.StoreConfig) bool {
	switch cfg.Driver {
	case config.DriverPgx, config.DriverPostgres, "":
		return cfg.Table == config.DefaultTable
	default:
		return true
	}
}

func migrateSQL(ctx context.Context, cfg config.StoreConfig, log logger.Logger) error {
	if !ManagesTable(cfg) {
		return fmt.Errorf("%w (%s), got %q", ErrCustomTable, config.DefaultTable, cfg.Table)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	connCfg, err := parseMigrationDSN(cfg.DSN)
	if err != nil {
		return err
	}

	log.Info("Running database migrations...")
	db := stdlib.OpenDB(*connCfg)
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("init migrate: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("schema already up to date")
		return nil
	}

	version, _, _ := m.Version()
	log.Info("schema migrated to version %d", version)
	return nil
}

// parseMigrationDSN accepts the same URL and key/value DSN forms as the pgx
// store, so a DSN that works for queries also works for migrations.
func parseMigrationDSN(dsn string) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	return connCfg, nil
}

func migrateGorm(ctx context.Context, cfg config.StoreConfig, log logger.Logger) error {
	db, err := openGormDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	log.Info("Running gorm auto-migration for table %s...", cfg.Table)
	if err := db.WithContext(ctx).Table(cfg.Table).AutoMigrate(&sensorModel{}); err != nil {
		return fmt.Errorf("auto-migrate %s: %w", cfg.Table, err)
	}
	return nil
}
