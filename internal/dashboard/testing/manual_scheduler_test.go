package testing

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type firedMsg struct {
	name string
	at   time.Time
}

func record(name string) func(time.Time) tea.Msg {
	return func(t time.Time) tea.Msg {
		return firedMsg{name: name, at: t}
	}
}

var start = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestManualScheduler_AfterReturnsNilCommand(t *testing.T) {
	s := NewManualScheduler(start)

	assert.Nil(t, s.After(time.Second, record("a")))
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, []time.Duration{time.Second}, s.Delays)
	assert.Equal(t, start, s.Now())
}

func TestManualScheduler_AdvanceFiresDueTimersInOrder(t *testing.T) {
	s := NewManualScheduler(start)
	s.After(5*time.Second, record("late"))
	s.After(2*time.Second, record("early"))
	s.After(2*time.Second, record("early-second"))
	s.After(10*time.Second, record("later"))

	assert.Empty(t, s.Advance(time.Second))

	msgs := s.Advance(4 * time.Second)
	assert.Equal(t, []tea.Msg{
		firedMsg{name: "early", at: start.Add(2 * time.Second)},
		firedMsg{name: "early-second", at: start.Add(2 * time.Second)},
		firedMsg{name: "late", at: start.Add(5 * time.Second)},
	}, msgs)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, start.Add(5*time.Second), s.Now())
}

func TestManualScheduler_TimersAreRelativeToCurrentClock(t *testing.T) {
	s := NewManualScheduler(start)
	s.Advance(time.Minute)
	s.After(time.Second, record("a"))

	msgs := s.Advance(time.Second)
	assert.Equal(t, []tea.Msg{firedMsg{name: "a", at: start.Add(time.Minute + time.Second)}}, msgs)
}

func TestManualScheduler_FireAll(t *testing.T) {
	s := NewManualScheduler(start)
	s.After(time.Hour, record("b"))
	s.After(time.Second, record("a"))

	msgs := s.FireAll()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].(firedMsg).name)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, start, s.Now(), "FireAll does not move the clock")
}
