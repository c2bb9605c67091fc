package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/ui"
)

// configSetCommand writes key=value into the config file, then re-validates
// the result so a typo is reported straight away.
func configSetCommand(w io.Writer, key, value string) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'tremor init' first, or point at one with --config")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't set %s", key),
			"Keys are dotted paths such as store.dsn or dashboard.poll_interval")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg, config.AllowMissingDSN()); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s was written but the config is no longer valid", key),
			"Fix the value with another 'tremor config set'")
	}

	fmt.Fprintf(w, "%s Set %s in %s\n", ui.SymbolSuccess, key, path)
	return nil
}

// configPathCommand prints the config file that would be loaded.
func configPathCommand(w io.Writer) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(w, "No config file found; using defaults and %s_* environment variables\n", config.EnvPrefix)
		return nil
	}
	fmt.Fprintln(w, path)
	return nil
}
