// Package ui provides terminal output components for tremor's CLI commands.
//
// The full-screen dashboard lives in internal/dashboard; this package covers
// the line-oriented commands (latest, history, migrate, doctor) and the
// pieces the dashboard shares with them.
//
// # Components Overview
//
//	Spinner       - Animated status indicator while a command waits on the store
//	PhaseDisplay  - Timed steps (connect, migrate) with success/fail lines
//	Sparkline     - One-line trend of a reading series
//	Tables        - Static tables, key/value listings and doctor results
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Passed checks, completed steps, no tremor
//	ColorError     (red)    - Failures and tremor readings
//	ColorWarning   (yellow) - Warnings and skipped steps
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// # Phase Display
//
//	pd := ui.NewPhaseDisplay(os.Stdout)
//	err := pd.Step("Connecting to store", func() error {
//		return st.Ping(ctx)
//	})
//
// Step prints a progress line, runs the function, then replaces the line
// with a checkmark or a cross and the elapsed time.
package ui
