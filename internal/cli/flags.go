package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/store"
)

// ParseInterval parses a --interval flag into a poll interval.
// Returns zero duration if the flag is empty, meaning "use the config".
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	interval, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 2s, 5s, or 1m.")
	}
	if interval < config.MinPollInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			fmt.Sprintf("Minimum interval is %s to avoid hammering the store", config.MinPollInterval))
	}
	return interval, nil
}

// ValidateLimit checks a --limit flag. Zero means "use the config".
func ValidateLimit(limit int) error {
	if limit < 0 || limit > store.MaxRecentLimit {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--limit must be between 1 and %d, got %d", store.MaxRecentLimit, limit),
			"Leave --limit off to use dashboard.history_limit from the config.")
	}
	return nil
}
