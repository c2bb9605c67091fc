package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	// Handle ~/path
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unchanged if we can't get home
		}
		return filepath.Join(home, path[2:])
	}

	// Handle standalone ~
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// ExpandDSN expands ${VAR} and $VAR references in a connection string so
// credentials can live in the environment instead of .tremor.yaml. For the
// sqlite driver the DSN is a file path, so ~ is expanded as well.
func ExpandDSN(driver, dsn string) string {
	if dsn == "" {
		return dsn
	}

	result := os.ExpandEnv(dsn)
	if driver == DriverSQLite {
		result = ExpandTilde(result)
	}
	return result
}
