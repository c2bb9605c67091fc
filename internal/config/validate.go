package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rileyhilliard/tremor/internal/errors"
)

const (
	// MinPollInterval is the fastest the dashboard may poll the store.
	MinPollInterval = 500 * time.Millisecond
	// MaxHistoryLimit mirrors the store's cap on recent reads.
	MaxHistoryLimit = 1000
)

// tableNamePattern restricts table names to plain SQL identifiers.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidDrivers lists the store drivers tremor knows how to open.
var ValidDrivers = []string{DriverPgx, DriverPostgres, DriverMySQL, DriverSQLite}

// ValidationOption controls validation behavior.
type ValidationOption func(*validationContext)

type validationContext struct {
	allowMissingDSN bool
}

// AllowMissingDSN skips the DSN check. Used by commands that never touch the
// store (init, version) and by doctor, which reports the missing DSN itself.
func AllowMissingDSN() ValidationOption {
	return func(c *validationContext) {
		c.allowMissingDSN = true
	}
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config, opts ...ValidationOption) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	ctx := &validationContext{}
	for _, opt := range opts {
		opt(ctx)
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tremor only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade tremor, or lower the version in .tremor.yaml.")
	}

	if err := validateStore(cfg.Store, ctx); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'store' section in your .tremor.yaml.")
	}

	if err := validateDashboard(cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'dashboard' section in your .tremor.yaml.")
	}

	if cfg.Server.Addr == "" {
		return errors.New(errors.ErrConfig,
			"server.addr is empty",
			"Set it to a listen address like ':8080'.")
	}

	return nil
}

// IsValidDriver reports whether name is a known store driver.
func IsValidDriver(name string) bool {
	for _, d := range ValidDrivers {
		if d == name {
			return true
		}
	}
	return false
}

// IsValidTableName reports whether name is a plain SQL identifier.
func IsValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

func validateStore(s StoreConfig, ctx *validationContext) error {
	if !IsValidDriver(s.Driver) {
		return fmt.Errorf("store.driver '%s' isn't supported - use pgx, postgres, mysql, or sqlite", s.Driver)
	}
	if s.DSN == "" && !ctx.allowMissingDSN {
		return fmt.Errorf("store.dsn is empty - tremor needs a connection string to read sensor data")
	}
	if !IsValidTableName(s.Table) {
		return fmt.Errorf("store.table '%s' isn't a plain identifier (letters, digits, underscores)", s.Table)
	}
	if s.QueryTimeout <= 0 {
		return fmt.Errorf("store.query_timeout needs to be positive (got %v)", s.QueryTimeout)
	}
	if s.Pool.MaxOpenConns < 0 || s.Pool.MaxIdleConns < 0 {
		return fmt.Errorf("store.pool connection limits can't be negative")
	}
	if s.Pool.ConnMaxLifetime < 0 {
		return fmt.Errorf("store.pool.conn_max_lifetime can't be negative")
	}
	return nil
}

func validateDashboard(d DashboardConfig) error {
	if d.PollInterval < MinPollInterval {
		return fmt.Errorf("dashboard.poll_interval %v is too fast - use at least %v", d.PollInterval, MinPollInterval)
	}
	if d.HistoryLimit < 1 || d.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("dashboard.history_limit needs to be 1-%d (got %d)", MaxHistoryLimit, d.HistoryLimit)
	}
	if d.EventLogLimit < 1 {
		return fmt.Errorf("dashboard.event_log_limit needs to be at least 1 (got %d)", d.EventLogLimit)
	}
	if d.NoticeTTL <= 0 {
		return fmt.Errorf("dashboard.notice_ttl needs to be positive (got %v)", d.NoticeTTL)
	}
	return validateGauges(d.Gauges)
}

func validateGauges(g GaugeConfig) error {
	if g.AccelMax <= 0 {
		return fmt.Errorf("dashboard.gauges.accel_max needs to be positive (got %g)", g.AccelMax)
	}
	if g.GyroMax <= 0 {
		return fmt.Errorf("dashboard.gauges.gyro_max needs to be positive (got %g)", g.GyroMax)
	}
	if g.Warning < 0 || g.Warning > 100 {
		return fmt.Errorf("dashboard.gauges.warning needs to be 0-100 (got %g)", g.Warning)
	}
	if g.Critical < 0 || g.Critical > 100 {
		return fmt.Errorf("dashboard.gauges.critical needs to be 0-100 (got %g)", g.Critical)
	}
	if g.Warning >= g.Critical {
		return fmt.Errorf("dashboard.gauges.warning (%g%%) is higher than critical (%g%%) - should be the other way around", g.Warning, g.Critical)
	}
	return nil
}
