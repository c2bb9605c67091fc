package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileHeader is written above generated config files.
const fileHeader = `# tremor configuration
# Run 'tremor' to open the dashboard, 'tremor doctor' to check the store connection.
# Any key can be overridden from the environment, e.g. TREMOR_STORE_DSN.

`

// The file-facing shapes below exist so durations are written as "5s"
// rather than nanosecond integers.
type fileConfig struct {
	Version   int           `yaml:"version"`
	Store     fileStore     `yaml:"store"`
	Dashboard fileDashboard `yaml:"dashboard"`
	Server    ServerConfig  `yaml:"server"`
}

type fileStore struct {
	Driver       string   `yaml:"driver"`
	DSN          string   `yaml:"dsn"`
	Table        string   `yaml:"table"`
	QueryTimeout string   `yaml:"query_timeout"`
	Pool         filePool `yaml:"pool"`
}

type filePool struct {
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime"`
}

type fileDashboard struct {
	PollInterval  string      `yaml:"poll_interval"`
	HistoryLimit  int         `yaml:"history_limit"`
	EventLogLimit int         `yaml:"event_log_limit"`
	BaseGSR       float64     `yaml:"base_gsr"`
	NoticeTTL     string      `yaml:"notice_ttl"`
	Gauges        GaugeConfig `yaml:"gauges"`
}

// Marshal renders cfg as YAML suitable for .tremor.yaml, header included.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version: cfg.Version,
		Store: fileStore{
			Driver:       cfg.Store.Driver,
			DSN:          cfg.Store.DSN,
			Table:        cfg.Store.Table,
			QueryTimeout: cfg.Store.QueryTimeout.String(),
			Pool: filePool{
				MaxOpenConns:    cfg.Store.Pool.MaxOpenConns,
				MaxIdleConns:    cfg.Store.Pool.MaxIdleConns,
				ConnMaxLifetime: cfg.Store.Pool.ConnMaxLifetime.String(),
			},
		},
		Dashboard: fileDashboard{
			PollInterval:  cfg.Dashboard.PollInterval.String(),
			HistoryLimit:  cfg.Dashboard.HistoryLimit,
			EventLogLimit: cfg.Dashboard.EventLogLimit,
			BaseGSR:       cfg.Dashboard.BaseGSR,
			NoticeTTL:     cfg.Dashboard.NoticeTTL.String(),
			Gauges:        cfg.Dashboard.Gauges,
		},
		Server: cfg.Server,
	}

	data, err := yaml.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append([]byte(fileHeader), data...), nil
}

// Save writes cfg to path, replacing any existing file.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
