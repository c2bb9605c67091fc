package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
)

// ConfigFileCheck verifies that a config file exists.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.Headline(err),
			Suggestion: "Check the --config path, or run 'tremor init' to create a config",
		}
	}

	if path == "" {
		// Environment overrides alone are a valid setup.
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No config file found, using defaults and TREMOR_* environment",
			Suggestion: "Run 'tremor init' to create a " + config.ConfigFileName,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// ConfigSchemaCheck verifies that the config loads and validates.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %s", errors.Headline(err)),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	// The DSN gets its own check with a clearer message.
	if err := config.Validate(cfg, config.AllowMissingDSN()); err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %s", errors.Headline(err)),
			Suggestion: "Fix the configuration errors in your " + config.ConfigFileName,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: "Schema valid",
	}
}

// ConfigStoreCheck verifies a store connection is configured.
type ConfigStoreCheck struct {
	ConfigPath string
}

func (c *ConfigStoreCheck) Name() string     { return "config_store" }
func (c *ConfigStoreCheck) Category() string { return CategoryConfig }

func (c *ConfigStoreCheck) Run(context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:  StatusFail,
			Message: "Cannot check store settings: config load error",
		}
	}

	if cfg.Store.DSN == "" {
		return CheckResult{
			Status:     StatusFail,
			Message:    "No store DSN configured",
			Suggestion: "Set store.dsn in " + config.ConfigFileName + " or export TREMOR_STORE_DSN",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Driver %s, table %s", cfg.Store.Driver, cfg.Store.Table),
	}
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
		&ConfigStoreCheck{ConfigPath: configPath},
	}
}
