// Package dashboard implements the tremor terminal dashboard.
//
// The dashboard has two tabs. The real-time tab polls the store for the newest
// reading and renders it as a status card, movement gauges and biometric
// values. The historical tab fetches the most recent readings once per mount
// (or on demand) and renders summary cards, charts and a tremor event log.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: the shell. Owns the tabs, the transient notice, the help overlay
//     and the terminal size, and routes messages to the active view.
//   - RealtimeView: Loading/Ready/Error state machine fed by a recurring poll.
//   - HistoricalView: one-shot fetch with derived summaries, scrolled in a
//     viewport.
//
// # Message Flow
//
// Every store call runs inside a tea.Cmd with its own query timeout and
// reports back as a message:
//
//  1. Mount() issues one fetch and, for the real-time view, schedules a tick.
//  2. realtimeTickMsg fires after the poll interval, issuing one fetch and
//     scheduling the next tick.
//  3. latestFetchedMsg / recentFetchedMsg update the view in place.
//  4. View() re-renders.
//
// Ticks carry the mount epoch they were scheduled under. Unmount bumps the
// epoch, so a tick that fires after teardown is dropped and never
// rescheduled. Fetches carry a request sequence number; a response older than
// the last one applied is discarded.
//
// Time comes from a Scheduler. RealScheduler wraps tea.Tick; tests drive the
// views with the manual scheduler in dashboard/testing.
//
// # Keyboard Shortcuts
//
//	tab, shift+tab  - Switch tabs
//	1, 2            - Jump to a tab
//	r               - Refresh the active tab
//	j/k, ↑/↓        - Scroll the historical view
//	?               - Toggle help overlay
//	q, Ctrl+C       - Quit
package dashboard
