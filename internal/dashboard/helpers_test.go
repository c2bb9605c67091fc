package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	dashtesting "github.com/rileyhilliard/tremor/internal/dashboard/testing"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

func init() {
	// Plain output so rendered views can be matched as text
	lipgloss.SetColorProfile(termenv.Ascii)
}

var testStart = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

const testInterval = 5 * time.Second

func reading(id int64, isTremor bool) tremor.SensorRecord {
	return tremor.SensorRecord{
		ID:             id,
		CreatedAt:      testStart.Add(time.Duration(id) * time.Second),
		AccelRMS:       1.2,
		GyroRMS:        40,
		AccelIntensity: 0.5,
		GyroIntensity:  1.25,
		AvgBPM:         72,
		GSR:            1002,
		IsTremor:       isTremor,
	}
}

func testOptions(st store.Store, sched *dashtesting.ManualScheduler, log logger.Logger) Options {
	return Options{
		Store:        st,
		Scheduler:    sched,
		Logger:       log,
		Location:     time.UTC,
		PollInterval: testInterval,
		QueryTimeout: time.Second,
	}
}

// runCmd executes cmd, expanding batches, and returns every message produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds msgs to update, running and feeding back every resulting
// command until nothing is left.
func pump(update func(tea.Msg) tea.Cmd, msgs ...tea.Msg) {
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		msgs = append(msgs, runCmd(update(msg))...)
	}
}

// pumpModel is pump for the shell, which returns a new model on each update.
func pumpModel(m Model, msgs ...tea.Msg) Model {
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		next, cmd := m.Update(msg)
		m = next.(Model)
		for _, out := range runCmd(cmd) {
			// Spinner frames would tick forever; they carry no state worth testing.
			if _, ok := out.(spinner.TickMsg); ok {
				continue
			}
			msgs = append(msgs, out)
		}
	}
	return m
}
