package cli

import (
	"os"

	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	dashboardInterval  string
	latestJSON         bool
	historyLimit       int
	historyJSON        bool
	serveAddr          string
	initDriver         string
	initDSN            string
	initTable          string
	initForce          bool
	initNonInteractive bool
	doctorJSON         bool
)

// dashboardCmd opens the full-screen dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the live dashboard (default command)",
	Long: `Open the full-screen dashboard with two tabs:

  Real-time Data        newest reading, refreshed every poll interval
  Historical Analysis   summary, charts and tremor event log of recent readings

Keyboard shortcuts:
  tab / shift+tab  Switch tabs
  1 / 2            Jump to a tab
  r                Refresh the active view
  j/k, up/down     Scroll the historical view
  ?                Show help
  q / Ctrl+C       Quit

Examples:
  tremor
  tremor dashboard --interval 2s
  tremor --config ./lab.tremor.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardInterval)
	},
}

// latestCmd prints the newest reading
var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the newest reading",
	Long: `Fetch the most recent reading and print it.

Examples:
  tremor latest
  tremor latest --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = latestJSON
		return latestCommand(cmd.Context(), cmd.OutOrStdout(), latestJSON)
	},
}

// historyCmd prints the summary of recent readings
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize recent readings",
	Long: `Fetch recent readings and print the tremor event count, average heart
rate, trend sparklines and the tremor event log.

Examples:
  tremor history
  tremor history --limit 500
  tremor history --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = historyJSON
		return historyCommand(cmd.Context(), cmd.OutOrStdout(), historyLimit, historyJSON)
	},
}

// serveCmd starts the read-only JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve readings over a read-only JSON API",
	Long: `Start an HTTP server exposing the same data as the dashboard.

Endpoints:
  GET /healthz                200 when the store answers, 503 otherwise
  GET /api/latest             newest reading
  GET /api/recent?limit=N     newest N readings
  GET /api/summary?limit=N    tremor count, average heart rate, event log, series

Examples:
  tremor serve
  tremor serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand(cmd.Context(), serveAddr)
	},
}

// migrateCmd creates the readings table for local development
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the readings table (local development)",
	Long: `Create the readings table in the configured store. Nothing is inserted;
tremor never writes readings.

pgx and postgres run the embedded SQL migrations, which only manage the
default table. mysql and sqlite create the configured table directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrateCommand(cmd.Context(), cmd.OutOrStdout())
	},
}

// initCmd creates a new .tremor.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tremor.yaml configuration",
	Long: `Create a .tremor.yaml file in the current directory.

Prompts for the store driver, connection string and table unless
--non-interactive is given.

Examples:
  tremor init
  tremor init --driver sqlite --dsn ./readings.db --non-interactive
  tremor init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Driver:         initDriver,
			DSN:            initDSN,
			Table:          initTable,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Out:            cmd.OutOrStdout(),
		})
	},
}

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the config file",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file",
	Long: `Set a dotted key in the config file, keeping comments and key order.

Examples:
  tremor config set store.dsn postgres://user:pass@db:5432/sensors
  tremor config set dashboard.poll_interval 2s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file tremor would use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPathCommand(cmd.OutOrStdout())
	},
}

// doctorCmd diagnoses config and store issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config and store issues",
	Long: `Run diagnostic checks to find common setup problems.

Checks:
  - Config file discovery and validity
  - Store settings (driver, DSN, table)
  - Store reachability
  - Table readability

Examples:
  tremor doctor
  tremor doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = doctorJSON
		return doctorCommand(cmd.Context(), cmd.OutOrStdout(), doctorJSON)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for tremor.

Examples:
  # Bash
  tremor completion bash > /etc/bash_completion.d/tremor

  # Zsh
  tremor completion zsh > "${fpath[1]}/_tremor"

  # Fish
  tremor completion fish > ~/.config/fish/completions/tremor.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dashboard flags, also accepted by the bare root command
	dashboardCmd.Flags().StringVar(&dashboardInterval, "interval", "", "poll interval override (e.g., 2s, 1m)")
	rootCmd.Flags().StringVar(&dashboardInterval, "interval", "", "poll interval override (e.g., 2s, 1m)")

	latestCmd.Flags().BoolVar(&latestJSON, "json", false, "output in JSON format")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "number of readings to load (default from config)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output in JSON format")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")

	initCmd.Flags().StringVar(&initDriver, "driver", "", "store driver: pgx, postgres, mysql, sqlite")
	initCmd.Flags().StringVar(&initDSN, "dsn", "", "store connection string")
	initCmd.Flags().StringVar(&initTable, "table", "", "table holding the readings")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use flags or defaults")

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	// Register all commands
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
