// Package testing provides test doubles for the dashboard package.
package testing

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timer struct {
	due time.Time
	seq int
	fn  func(time.Time) tea.Msg
}

// ManualScheduler is a dashboard.Scheduler whose clock only moves when the
// test says so. After records the timer and returns a nil command; the test
// collects the fired messages from Advance or FireAll and feeds them to the
// model itself.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	pending []timer
	nextSeq int

	// Delays records every duration passed to After, in call order.
	Delays []time.Duration
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the manual clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// After registers fn to fire once the clock has advanced by d.
func (s *ManualScheduler) After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Delays = append(s.Delays, d)
	s.pending = append(s.pending, timer{due: s.now.Add(d), seq: s.nextSeq, fn: fn})
	s.nextSeq++
	return nil
}

// Advance moves the clock forward by d and returns the messages of every
// timer that came due, earliest first.
func (s *ManualScheduler) Advance(d time.Duration) []tea.Msg {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now

	var due, rest []timer
	for _, t := range s.pending {
		if !t.due.After(now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	return fire(due)
}

// FireAll fires every pending timer regardless of its due time, without
// moving the clock.
func (s *ManualScheduler) FireAll() []tea.Msg {
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	return fire(due)
}

// Pending returns the number of timers that have not fired.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func fire(timers []timer) []tea.Msg {
	sort.Slice(timers, func(i, j int) bool {
		if timers[i].due.Equal(timers[j].due) {
			return timers[i].seq < timers[j].seq
		}
		return timers[i].due.Before(timers[j].due)
	})

	msgs := make([]tea.Msg, 0, len(timers))
	for _, t := range timers {
		msgs = append(msgs, t.fn(t.due))
	}
	return msgs
}
