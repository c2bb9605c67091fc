package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/ui"
)

// Tab identifies a dashboard tab.
type Tab int

const (
	TabRealtime Tab = iota
	TabHistorical
)

var allTabs = []Tab{TabRealtime, TabHistorical}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabRealtime:
		return "Real-time Data"
	case TabHistorical:
		return "Historical Analysis"
	default:
		return "unknown"
	}
}

// Next cycles to the following tab.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % len(allTabs))
}

// Prev cycles to the preceding tab.
func (t Tab) Prev() Tab {
	return Tab((int(t) + len(allTabs) - 1) % len(allTabs))
}

// Options configures the dashboard. Zero values fall back to the config defaults.
type Options struct {
	Store     store.Store
	Scheduler Scheduler
	Logger    logger.Logger
	// Location renders timestamps; nil means time.Local.
	Location *time.Location

	PollInterval  time.Duration
	QueryTimeout  time.Duration
	HistoryLimit  int
	EventLogLimit int
	BaseGSR       float64
	NoticeTTL     time.Duration
	Gauges        config.GaugeConfig
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg *config.Config, st store.Store, log logger.Logger) Options {
	return Options{
		Store:         st,
		Scheduler:     RealScheduler{},
		Logger:        log,
		PollInterval:  cfg.Dashboard.PollInterval,
		QueryTimeout:  cfg.Store.QueryTimeout,
		HistoryLimit:  cfg.Dashboard.HistoryLimit,
		EventLogLimit: cfg.Dashboard.EventLogLimit,
		BaseGSR:       cfg.Dashboard.BaseGSR,
		NoticeTTL:     cfg.Dashboard.NoticeTTL,
		Gauges:        cfg.Dashboard.Gauges,
	}
}

func (o Options) withDefaults() Options {
	def := config.DefaultConfig()

	if o.Scheduler == nil {
		o.Scheduler = RealScheduler{}
	}
	if o.Logger == nil {
		o.Logger = logger.Noop()
	}
	if o.PollInterval <= 0 {
		o.PollInterval = def.Dashboard.PollInterval
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = def.Store.QueryTimeout
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = def.Dashboard.HistoryLimit
	}
	if o.EventLogLimit <= 0 {
		o.EventLogLimit = def.Dashboard.EventLogLimit
	}
	if o.NoticeTTL <= 0 {
		o.NoticeTTL = def.Dashboard.NoticeTTL
	}
	if o.Gauges.AccelMax <= 0 {
		o.Gauges.AccelMax = def.Dashboard.Gauges.AccelMax
	}
	if o.Gauges.GyroMax <= 0 {
		o.Gauges.GyroMax = def.Dashboard.Gauges.GyroMax
	}
	if o.Gauges.Warning <= 0 && o.Gauges.Critical <= 0 {
		o.Gauges.Warning = def.Dashboard.Gauges.Warning
		o.Gauges.Critical = def.Dashboard.Gauges.Critical
	}
	return o
}

// Model is the dashboard shell: tabs, notices, help and the two views.
type Model struct {
	opts    Options
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	realtime   RealtimeView
	historical HistoricalView
	active     Tab

	notice      Notice
	noticeShown bool
	noticeID    int

	showHelp bool
	quitting bool
	width    int
	height   int

	// mountCmd is the real-time view's first fetch and tick, run by Init.
	mountCmd tea.Cmd
}

// NewModel creates the shell with the real-time tab mounted.
func NewModel(opts Options) Model {
	opts = opts.withDefaults()

	m := Model{
		opts:       opts,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    ui.NewBubblesSpinner(ColorAccent),
		realtime:   NewRealtimeView(opts),
		historical: NewHistoricalView(opts),
		active:     TabRealtime,
	}
	m.mountCmd = m.realtime.Mount()
	return m
}

// Init starts the spinner and the real-time view's first poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.mountCmd, m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.MouseMsg:
		if m.active == TabHistorical {
			return m, m.historical.Scroll(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.historical.SetSize(m.contentWidth(), m.bodyHeight())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case realtimeTickMsg, latestFetchedMsg:
		return m, m.realtime.Update(msg)

	case recentFetchedMsg:
		return m, m.historical.Update(msg)

	case noticeMsg:
		return m, m.showNotice(msg.notice)

	case noticeExpiredMsg:
		if m.noticeShown && msg.id == m.noticeID {
			m.noticeShown = false
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// switchTab unmounts the current tab and mounts t.
func (m *Model) switchTab(t Tab) tea.Cmd {
	if t == m.active {
		return nil
	}
	m.active = t

	switch t {
	case TabHistorical:
		m.realtime.Unmount()
		return m.historical.Mount()
	default:
		m.historical.Unmount()
		return m.realtime.Mount()
	}
}

// showNotice replaces the current notice and schedules its expiry.
func (m *Model) showNotice(n Notice) tea.Cmd {
	m.noticeID++
	m.notice = n
	m.noticeShown = true

	id := m.noticeID
	return m.opts.Scheduler.After(m.opts.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// ActiveTab returns the selected tab.
func (m Model) ActiveTab() Tab { return m.active }

// Notice returns the notice on screen, if any.
func (m Model) Notice() (Notice, bool) { return m.notice, m.noticeShown }

// Realtime returns the real-time view.
func (m Model) Realtime() RealtimeView { return m.realtime }

// Historical returns the historical view.
func (m Model) Historical() HistoricalView { return m.historical }

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }
