// Package store is the read-only client for the remote table holding sensor
// readings. Two query shapes exist: the newest record, and the newest N
// records, both ordered by created_at descending.
//
// Backends:
//   - pgx: native pgxpool connection scanned with scany (default)
//   - postgres, mysql, sqlite: gorm with the matching dialector
//
// Every call takes a context; callers bound it with the configured query
// timeout. There are no retries. Rows are validated at this boundary and
// never leave the package as anything but tremor.SensorRecord.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

const (
	// DefaultRecentLimit is used when FetchRecent is called with limit <= 0.
	DefaultRecentLimit = 100
	// MaxRecentLimit caps a single FetchRecent read.
	MaxRecentLimit = 1000
)

// Operation names used in QueryError.
const (
	OpFetchLatest = "fetch latest"
	OpFetchRecent = "fetch recent"
	OpPing        = "ping"
)

var (
	// ErrNoRows is returned by FetchLatest when the table is empty.
	ErrNoRows = errors.New("no rows in result set")
	// ErrQueryFailed marks transport and store-side failures.
	ErrQueryFailed = errors.New("query failed")
	// ErrMalformedRecord is returned when a row fails validation.
	ErrMalformedRecord = tremor.ErrMalformedRecord
	// ErrUnsupportedDriver is returned by Open for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)

// Store reads sensor records from the remote table.
type Store interface {
	// FetchLatest returns the most recent record by created_at.
	FetchLatest(ctx context.Context) (tremor.SensorRecord, error)
	// FetchRecent returns up to limit records, newest first. An empty
	// table yields an empty slice and no error.
	FetchRecent(ctx context.Context, limit int) ([]tremor.SensorRecord, error)
	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}

// QueryError describes a failed store read.
type QueryError struct {
	Op    string
	Table string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s from %s: %v", e.Op, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError reports whether err is (or wraps) a *QueryError.
func IsQueryError(err error) bool {
	var qErr *QueryError
	return errors.As(err, &qErr)
}

// queryFailed wraps a driver error so it matches both ErrQueryFailed and the cause.
func queryFailed(op, table string, err error) *QueryError {
	return &QueryError{Op: op, Table: table, Err: fmt.Errorf("%w: %w", ErrQueryFailed, err)}
}

func noRows(op, table string) *QueryError {
	return &QueryError{Op: op, Table: table, Err: ErrNoRows}
}

func malformedRow(op, table string, err error) *QueryError {
	return &QueryError{Op: op, Table: table, Err: err}
}

// NormalizeLimit applies the default and the cap to a FetchRecent limit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// Open connects to the store described by cfg. Connections are established
// lazily so an unreachable store surfaces on the first read, not here.
func Open(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (Store, error) {
	if log == nil {
		log = logger.Noop()
	}
	if !config.IsValidTableName(cfg.Table) {
		return nil, fmt.Errorf("invalid table name %q", cfg.Table)
	}

	switch cfg.Driver {
	case config.DriverPgx, "":
		return openPgx(ctx, cfg, log)
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		return openGorm(cfg, log)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}

// mapRows converts scanned rows to records, dropping (and logging) malformed ones.
func mapRows(rows []sensorRow, table string, log logger.Logger) []tremor.SensorRecord {
	records := make([]tremor.SensorRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			log.Warn("skipping row from %s: %v", table, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}
