package store

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

// PgxStore reads records through a pgx connection pool.
type PgxStore struct {
	pool  *pgxpool.Pool
	table string
	log   logger.Logger

	latestSQL string
	recentSQL string
}

func openPgx(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (*PgxStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.Pool.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.Pool.MaxOpenConns)
	}
	// pgxpool has no idle limit; max_idle_conns only applies to gorm backends.
	if cfg.Pool.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.Pool.ConnMaxLifetime
	}
	poolCfg.LazyConnect = true

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	log.Debug("pgx pool ready (table=%s, max_conns=%d)", cfg.Table, poolCfg.MaxConns)
	return newPgxStore(pool, cfg.Table, log), nil
}

func newPgxStore(pool *pgxpool.Pool, table string, log logger.Logger) *PgxStore {
	ident := pgx.Identifier{table}.Sanitize()
	cols := selectList(func(c string) string { return pgx.Identifier{c}.Sanitize() })

	return &PgxStore{
		pool:      pool,
		table:     table,
		log:       log,
		latestSQL: fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC LIMIT 1`, cols, ident),
		recentSQL: fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC LIMIT $1`, cols, ident),
	}
}

// FetchLatest returns the newest record.
func (s *PgxStore) FetchLatest(ctx context.Context) (tremor.SensorRecord, error) {
	var row sensorRow
	err := pgxscan.Get(ctx, s.pool, &row, s.latestSQL)
	if err != nil {
		if pgxscan.NotFound(err) {
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
func (s *PgxStore) FetchRecent(ctx context.Context, limit int) ([]tremor.SensorRecord, error) {
	limit = NormalizeLimit(limit)

	var rows []sensorRow
	if err := pgxscan.Select(ctx, s.pool, &rows, s.recentSQL, limit); err != nil {
		s.log.Error("%s failed: %v", OpFetchRecent, err)
		return nil, queryFailed(OpFetchRecent, s.table, err)
	}

	s.log.Debug("%s: %d rows (limit %d)", OpFetchRecent, len(rows), limit)
	return mapRows(rows, s.table, s.log), nil
}

// Ping checks that a connection can be acquired and used.
func (s *PgxStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return queryFailed(OpPing, s.table, err)
	}
	return nil
}

// Close closes the pool.
func (s *PgxStore) Close() error {
	s.pool.Close()
	return nil
}
