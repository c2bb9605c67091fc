package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler supplies the clock and the timers the views poll with.
type Scheduler interface {
	// Now returns the current time.
	Now() time.Time
	// After returns a command that delivers fn's message once d has elapsed.
	After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
}

// RealScheduler schedules with the wall clock through tea.Tick.
type RealScheduler struct{}

// Now returns time.Now().
func (RealScheduler) Now() time.Time {
	return time.Now()
}

// After wraps tea.Tick.
func (RealScheduler) After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(d, fn)
}
