// Package cli implements the tremor command-line interface.
//
// Each Cobra command parses its flags and delegates to a *Command function
// that does the work against an io.Writer, so the logic can be tested
// without going through Cobra.
//
// # Command Structure
//
// The root command is "tremor"; with no subcommand it opens the dashboard:
//
//	tremor                  - Live dashboard (same as "tremor dashboard")
//	tremor latest           - Print the newest reading
//	tremor history          - Summary and tremor event log of recent readings
//	tremor serve            - Read-only JSON API
//	tremor migrate          - Create the readings table for local development
//	tremor init             - Create .tremor.yaml
//	tremor config set|path  - Edit or locate the config file
//	tremor doctor           - Diagnose config and store issues
//
// # Flag Handling
//
// Global flags (--config, --log-file, --no-color) live on the root command.
// Commands that support --json switch the package into machine mode, which
// also makes Execute report failures as a JSON envelope on stdout.
//
// # Store Access
//
// Commands open the store through the openStore variable and bound every
// read by store.query_timeout. Store failures are turned into structured
// errors by wrapQueryError so the user always gets a next step.
package cli
