package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
)

// Global flags
var (
	cfgFile string
	logFile string
	noColor bool
)

const doctorSuggestion = "Run 'tremor doctor' to check the store connection"

var rootCmd = &cobra.Command{
	Use:   "tremor",
	Short: "Terminal dashboard for tremor sensor readings",
	Long: `tremor reads accelerometer, gyroscope, heart rate and skin response
readings from a remote store and shows them as a live terminal dashboard.

Running tremor with no subcommand opens the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardInterval)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search for .tremor.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write dashboard logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context so the dashboard and the API server can shut down cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}
	if MachineMode() {
		_ = WriteJSONFromError(os.Stdout, err)
	} else {
		fmt.Fprintln(os.Stderr, strings.TrimRight(err.Error(), "\n"))
		if isUnknownCommandError(err) {
			fmt.Fprintln(os.Stderr, "\nRun 'tremor --help' for a list of commands.")
		}
	}
	os.Exit(1)
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// loadConfig finds, loads and validates the config. A missing file is fine
// as long as the environment supplies what validation needs.
func loadConfig(opts ...config.ValidationOption) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, path, err
	}
	if err := config.Validate(cfg, opts...); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// openStore is replaced in tests.
var openStore = store.Open

// connect opens the configured store.
func connect(ctx context.Context, cfg *config.Config) (store.Store, error) {
	st, err := openStore(ctx, cfg.Store, logger.NewEnvLogger("[store]"))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			fmt.Sprintf("Couldn't open the %s store", cfg.Store.Driver),
			"Check store.dsn in your config, then run 'tremor doctor'")
	}
	return st, nil
}

// wrapQueryError turns a store failure into a structured error with a next step.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, store.ErrNoRows):
		return errors.WrapWithCode(err, errors.ErrQuery,
			"No readings in the store yet",
			"Readings show up once the sensor pipeline writes to the table")
	case stderrors.Is(err, store.ErrMalformedRecord):
		return errors.WrapWithCode(err, errors.ErrQuery,
			"The store returned a malformed reading",
			"Check the table schema matches what the sensor pipeline writes")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.WrapWithCode(err, errors.ErrQuery,
			"The store didn't answer in time",
			"Raise store.query_timeout, or run 'tremor doctor' to check the store connection")
	default:
		return errors.WrapWithCode(err, errors.ErrQuery,
			"Failed to read from the store",
			doctorSuggestion)
	}
}
