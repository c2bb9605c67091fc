package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".tremor.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/tremor"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is prepended to environment overrides (TREMOR_STORE_DSN, ...).
	EnvPrefix = "TREMOR"
)

// Load reads config from the specified path, with defaults and environment
// overrides merged in.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'tremor init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// LoadOrDefault loads config from the found path, or returns defaults (plus
// environment overrides) when no config file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .tremor.yaml in current directory
// 3. .tremor.yaml in parent directories (stops at git root or home)
// 4. ~/.config/tremor/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && parent == home {
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// newViper returns a viper instance with every key defaulted so that
// AutomaticEnv overrides reach Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults mirrors DefaultConfig into viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.table", d.Store.Table)
	v.SetDefault("store.query_timeout", d.Store.QueryTimeout.String())
	v.SetDefault("store.pool.max_open_conns", d.Store.Pool.MaxOpenConns)
	v.SetDefault("store.pool.max_idle_conns", d.Store.Pool.MaxIdleConns)
	v.SetDefault("store.pool.conn_max_lifetime", d.Store.Pool.ConnMaxLifetime.String())
	v.SetDefault("dashboard.poll_interval", d.Dashboard.PollInterval.String())
	v.SetDefault("dashboard.history_limit", d.Dashboard.HistoryLimit)
	v.SetDefault("dashboard.event_log_limit", d.Dashboard.EventLogLimit)
	v.SetDefault("dashboard.base_gsr", d.Dashboard.BaseGSR)
	v.SetDefault("dashboard.notice_ttl", d.Dashboard.NoticeTTL.String())
	v.SetDefault("dashboard.gauges.accel_max", d.Dashboard.Gauges.AccelMax)
	v.SetDefault("dashboard.gauges.gyro_max", d.Dashboard.Gauges.GyroMax)
	v.SetDefault("dashboard.gauges.warning", d.Dashboard.Gauges.Warning)
	v.SetDefault("dashboard.gauges.critical", d.Dashboard.Gauges.Critical)
	v.SetDefault("server.addr", d.Server.Addr)
}

// parseConfig converts viper config to our Config struct.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Store.DSN = ExpandDSN(cfg.Store.Driver, cfg.Store.DSN)

	return cfg, nil
}
