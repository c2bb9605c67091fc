package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

// GormStore reads records through gorm. Used for the postgres, mysql and
// sqlite drivers.
type GormStore struct {
	db     *gorm.DB
	driver string
	table  string
	log    logger.Logger
}

// dialector selects the gorm dialector for driver.
func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.New(mysql.Config{
			DSN:                       dsn,
			SkipInitializeWithVersion: true,
		}), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

// openGormDB opens a gorm handle with pool limits applied. gorm's own logger
// is silenced since it writes straight to stdout.
func openGormDB(cfg config.StoreConfig) (*gorm.DB, error) {
	d, err := dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:               gormlogger.Discard,
		QueryFields:          true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	}
	if cfg.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
	}
	if cfg.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Pool.ConnMaxLifetime)
	}

	return db, nil
}

func openGorm(cfg config.StoreConfig, log logger.Logger) (*GormStore, error) {
	db, err := openGormDB(cfg)
	if err != nil {
		return nil, err
	}

	log.Debug("gorm %s store ready (table=%s)", cfg.Driver, cfg.Table)
	return &GormStore{db: db, driver: cfg.Driver, table: cfg.Table, log: log}, nil
}

// newest scopes a query to the configured table, newest first.
func (s *GormStore) newest(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table).Order("created_at DESC")
}

// FetchLatest returns the newest record.
func (s *GormStore) FetchLatest(ctx context.Context) (tremor.SensorRecord, error) {
	var row sensorRow
	err := s.newest(ctx).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tremor.SensorRecord{}, noRows(OpFetchLatest, s.table)
		}
		s.log.Error("%s failed: %v", OpFetchLatest, err)
		return tremor.SensorRecord{}, queryFailed(OpFetchLatest, s.table, err)
	}

	rec, err := row.record()
	if err != nil {
		s.log.Warn("latest row from %s is malformed: %v", s.table, err)
		return tremor.SensorRecord{}, malformedRow(OpFetchLatest, s.table, err)
	}
	return rec, nil
}

// FetchRecent returns up to limit records, newest first.
func (s *GormStore) FetchRecent(ctx context.Context, limit int) ([]tremor.SensorRecord, error) {
	limit = NormalizeLimit(limit)

	var rows []sensorRow
	if err := s.newest(ctx).Limit(limit).Find(&rows).Error; err != nil {
		s.log.Error("%s failed: %v", OpFetchRecent, err)
		return nil, queryFailed(OpFetchRecent, s.table, err)
	}

	s.log.Debug("%s: %d rows (limit %d)", OpFetchRecent, len(rows), limit)
	return mapRows(rows, s.table, s.log), nil
}

// Ping checks the database is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return queryFailed(OpPing, s.table, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return queryFailed(OpPing, s.table, err)
	}
	return nil
}

// Close closes the underlying sql.DB.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
