package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

// ViewState is the load state of a dashboard view.
type ViewState int

const (
	StateLoading ViewState = iota
	StateReady
	StateError
)

// String returns a human-readable state name.
func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// RealtimeView polls the store for the newest reading while mounted.
type RealtimeView struct {
	store      store.Store
	sched      Scheduler
	log        logger.Logger
	loc        *time.Location
	interval   time.Duration
	timeout    time.Duration
	baseGSR    float64
	accelMax   float64
	gyroMax    float64
	thresholds tremor.Thresholds

	state       ViewState
	record      tremor.SensorRecord
	hasRecord   bool
	lastUpdated time.Time
	errMsg      string

	mounted bool
	epoch   uint64 // bumped on every mount and unmount
	seq     uint64 // last request issued
	applied uint64 // last response applied

	history *History
}

// NewRealtimeView creates an unmounted real-time view.
func NewRealtimeView(opts Options) RealtimeView {
	opts = opts.withDefaults()
	return RealtimeView{
		store:    opts.Store,
		sched:    opts.Scheduler,
		log:      opts.Logger,
		loc:      opts.Location,
		interval: opts.PollInterval,
		timeout:  opts.QueryTimeout,
		baseGSR:  opts.BaseGSR,
		accelMax: opts.Gauges.AccelMax,
		gyroMax:  opts.Gauges.GyroMax,
		thresholds: tremor.Thresholds{
			Warning:  opts.Gauges.Warning,
			Critical: opts.Gauges.Critical,
		},
		state:   StateLoading,
		history: NewHistory(DefaultHistorySize),
	}
}

// Mount starts a fresh session: one fetch now and a tick after the poll interval.
func (v *RealtimeView) Mount() tea.Cmd {
	v.epoch++
	v.mounted = true
	v.state = StateLoading
	v.record = tremor.SensorRecord{}
	v.hasRecord = false
	v.lastUpdated = time.Time{}
	v.errMsg = ""
	v.history.Clear()

	v.log.Debug("real-time view mounted (epoch %d, every %s)", v.epoch, v.interval)
	return tea.Batch(v.fetch(), v.scheduleTick())
}

// Unmount stops polling. Ticks and responses from the ended mount are dropped.
func (v *RealtimeView) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.epoch++
	v.log.Debug("real-time view unmounted")
}

// Refresh forces an immediate fetch.
func (v *RealtimeView) Refresh() tea.Cmd {
	if !v.mounted {
		return nil
	}
	return v.fetch()
}

// Update handles ticks and fetch results.
func (v *RealtimeView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case realtimeTickMsg:
		if !v.mounted || msg.epoch != v.epoch {
			v.log.Debug("dropping tick from epoch %d", msg.epoch)
			return nil
		}
		return tea.Batch(v.fetch(), v.scheduleTick())

	case latestFetchedMsg:
		return v.apply(msg)
	}
	return nil
}

func (v *RealtimeView) fetch() tea.Cmd {
	v.seq++
	st, timeout, epoch, seq := v.store, v.timeout, v.epoch, v.seq

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rec, err := st.FetchLatest(ctx)
		return latestFetchedMsg{epoch: epoch, seq: seq, record: rec, err: err}
	}
}

func (v *RealtimeView) scheduleTick() tea.Cmd {
	epoch := v.epoch
	return v.sched.After(v.interval, func(t time.Time) tea.Msg {
		return realtimeTickMsg{epoch: epoch, at: t}
	})
}

func (v *RealtimeView) apply(msg latestFetchedMsg) tea.Cmd {
	if !v.mounted || msg.epoch != v.epoch {
		return nil
	}
	if msg.seq <= v.applied {
		v.log.Debug("discarding stale response #%d (already applied #%d)", msg.seq, v.applied)
		return nil
	}
	v.applied = msg.seq

	if msg.err != nil {
		v.log.Error("fetching real-time data: %v", msg.err)
		v.state = StateError
		v.errMsg = errLatestFailed
		return raiseNotice(NoticeError, noticeLatestFailed)
	}

	v.record = msg.record
	v.hasRecord = true
	v.state = StateReady
	v.errMsg = ""
	v.lastUpdated = v.sched.Now()
	v.history.Push(msg.record)
	return nil
}

// State returns the current load state.
func (v RealtimeView) State() ViewState { return v.state }

// Record returns the newest reading and whether one has been received.
func (v RealtimeView) Record() (tremor.SensorRecord, bool) { return v.record, v.hasRecord }

// LastUpdated returns when the last successful poll was applied.
func (v RealtimeView) LastUpdated() time.Time { return v.lastUpdated }

// Err returns the error message shown in the error panel.
func (v RealtimeView) Err() string { return v.errMsg }

// Mounted reports whether the view is polling.
func (v RealtimeView) Mounted() bool { return v.mounted }

// History returns the in-session readings behind the sparklines.
func (v RealtimeView) History() *History { return v.history }

// Gauges returns the movement gauges for the current record.
func (v RealtimeView) Gauges() []tremor.Gauge {
	return tremor.MovementGauges(v.record, v.accelMax, v.gyroMax)
}

// View renders the tab body at the given width.
func (v RealtimeView) View(width int, spin string) string {
	var b strings.Builder
	b.WriteString(v.renderHeader(width))
	b.WriteString("\n\n")

	switch {
	case v.state == StateLoading && !v.hasRecord:
		b.WriteString(spin + " " + LabelStyle.Render("Loading latest reading..."))
	case v.state == StateError:
		b.WriteString(ErrorPanelStyle.Render(v.errMsg))
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("Press r to retry. Polling continues in the background."))
	case v.hasRecord:
		b.WriteString(v.renderCards(width))
	default:
		b.WriteString(EmptyPanelStyle.Render("No data available. Press r to refresh."))
	}
	return b.String()
}

func (v RealtimeView) renderHeader(width int) string {
	status := "Updating..."
	if !v.lastUpdated.IsZero() {
		status = "Last updated: " + tremor.ClockTime(v.lastUpdated, v.loc)
	}
	return spread(TitleStyle.Render("Real-time Monitor"), MutedStyle.Render(status), width)
}

func (v RealtimeView) renderCards(width int) string {
	if width >= BreakpointSideBySide {
		half := width / 2
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			v.renderStatusCard(half),
			v.renderMovementCard(width-half),
		)
		return lipgloss.JoinVertical(lipgloss.Left, top, v.renderBiometricCard(width))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderStatusCard(width),
		v.renderMovementCard(width),
		v.renderBiometricCard(width),
	)
}

func (v RealtimeView) renderStatusCard(width int) string {
	r := v.record
	statusStyle := lipgloss.NewStyle().Foreground(TremorColor(r.IsTremor)).Bold(true)

	status := "✓ No Tremor"
	if r.IsTremor {
		status = "▲ Tremor Detected"
	}

	lines := []string{
		statusStyle.Render(status),
		"",
		LabelStyle.Render("Timestamp: ") + ValueStyle.Render(tremor.ClockTime(r.CreatedAt, v.loc)),
	}
	return renderCard("Tremor Status", lines, width, TremorColor(r.IsTremor))
}

func (v RealtimeView) renderMovementCard(width int) string {
	inner := cardContentWidth(width)

	var lines []string
	series := [][]float64{v.history.Accel(inner), v.history.Gyro(inner)}
	for i, g := range v.Gauges() {
		level := g.Level(v.thresholds)
		value := fmt.Sprintf("%s %s", tremor.FormatFixed2(g.Value), g.Unit)
		lines = append(lines,
			spread(LabelStyle.Render(g.Title), ValueStyle.Render(value), inner),
			GaugeBar(inner, g.Percent(), level),
		)
		if spark := RenderMiniSparkline(series[i], inner); spark != "" {
			lines = append(lines, MutedStyle.Render(spark))
		}
		lines = append(lines, "")
	}

	half := inner / 2
	lines = append(lines,
		padTo(LabelStyle.Render("Accel Intensity"), half)+LabelStyle.Render("Gyro Intensity"),
		padTo(ValueStyle.Render(tremor.FormatFixed2(v.record.AccelIntensity)), half)+
			ValueStyle.Render(tremor.FormatFixed2(v.record.GyroIntensity)),
	)
	return renderCard("Movement Metrics", lines, width, ColorBorder)
}

func (v RealtimeView) renderBiometricCard(width int) string {
	inner := cardContentWidth(width)
	third := inner / 3
	r := v.record

	heart := lipgloss.NewStyle().Foreground(ColorHeartRate)
	gsr := lipgloss.NewStyle().Foreground(ColorGSR)

	labels := padTo(LabelStyle.Render("Heart Rate"), third) +
		padTo(LabelStyle.Render("GSR"), third) +
		LabelStyle.Render("Base GSR")
	values := padTo(ValueStyle.Render(tremor.FormatBPM(r.AvgBPM))+MutedStyle.Render(" BPM"), third) +
		padTo(ValueStyle.Render(tremor.FormatGSR(r.GSR))+MutedStyle.Render(" units"), third) +
		ValueStyle.Render(tremor.FormatGSR(v.baseGSR)) + MutedStyle.Render(" units")

	lines := []string{labels, values}

	sparkWidth := third - 2
	hr := RenderMiniSparkline(v.history.HeartRate(sparkWidth), sparkWidth)
	gs := RenderMiniSparkline(v.history.GSR(sparkWidth), sparkWidth)
	if hr != "" || gs != "" {
		lines = append(lines, padTo(heart.Render(hr), third)+gsr.Render(gs))
	}
	return renderCard("Biometric Data", lines, width, ColorBorder)
}
