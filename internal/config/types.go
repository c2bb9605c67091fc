package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Store drivers.
const (
	DriverPgx      = "pgx"      // native pgx pool
	DriverPostgres = "postgres" // gorm over the postgres dialector
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DefaultTable is the table the upstream ingest pipeline writes readings to.
const DefaultTable = "tremor_data"

// Config represents the complete .tremor.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
}

// StoreConfig describes how to reach the remote store holding sensor readings.
type StoreConfig struct {
	// Driver selects the backend: pgx, postgres, mysql, or sqlite.
	Driver string `yaml:"driver" mapstructure:"driver"`

	// DSN is the connection string (URL for pgx/postgres, go-sql-driver DSN
	// for mysql, file path for sqlite).
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// Table holding the readings.
	Table string `yaml:"table" mapstructure:"table"`

	// QueryTimeout bounds every individual read.
	QueryTimeout time.Duration `yaml:"query_timeout" mapstructure:"query_timeout"`

	Pool PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// PoolConfig holds connection pool limits.
type PoolConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// DashboardConfig controls the terminal dashboard.
type DashboardConfig struct {
	// PollInterval is how often the real-time view fetches the latest record.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// HistoryLimit is how many recent records the historical view loads.
	HistoryLimit int `yaml:"history_limit" mapstructure:"history_limit"`

	// EventLogLimit caps the tremor event log.
	EventLogLimit int `yaml:"event_log_limit" mapstructure:"event_log_limit"`

	// BaseGSR is the reference skin-response level shown next to live GSR.
	BaseGSR float64 `yaml:"base_gsr" mapstructure:"base_gsr"`

	// NoticeTTL is how long transient notices stay on screen.
	NoticeTTL time.Duration `yaml:"notice_ttl" mapstructure:"notice_ttl"`

	Gauges GaugeConfig `yaml:"gauges" mapstructure:"gauges"`
}

// GaugeConfig sets the scale and color thresholds of the movement gauges.
type GaugeConfig struct {
	AccelMax float64 `yaml:"accel_max" mapstructure:"accel_max"`
	GyroMax  float64 `yaml:"gyro_max" mapstructure:"gyro_max"`

	// Warning and Critical are percentages of the gauge maximum.
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// ServerConfig controls `tremor serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Store: StoreConfig{
			Driver:       DriverPgx,
			Table:        DefaultTable,
			QueryTimeout: 10 * time.Second,
			Pool: PoolConfig{
				MaxOpenConns:    4,
				MaxIdleConns:    2,
				ConnMaxLifetime: 5 * time.Minute,
			},
		},
		Dashboard: DashboardConfig{
			PollInterval:  5 * time.Second,
			HistoryLimit:  100,
			EventLogLimit: 25,
			BaseGSR:       995,
			NoticeTTL:     4 * time.Second,
			Gauges: GaugeConfig{
				AccelMax: 5,
				GyroMax:  200,
				Warning:  60,
				Critical: 80,
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
