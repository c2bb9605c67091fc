package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

// chartHeight is the number of rows each braille chart takes.
const chartHeight = 2

// HistoricalView fetches the most recent readings on mount and on demand,
// and renders their summaries in a scrollable viewport.
type HistoricalView struct {
	store         store.Store
	log           logger.Logger
	loc           *time.Location
	timeout       time.Duration
	limit         int
	eventLogLimit int

	state   ViewState
	records []tremor.SensorRecord
	summary tremor.Summary
	errMsg  string
	loading bool

	mounted bool
	epoch   uint64
	seq     uint64
	applied uint64

	viewport viewport.Model
	width    int
}

// NewHistoricalView creates an unmounted historical view.
func NewHistoricalView(opts Options) HistoricalView {
	opts = opts.withDefaults()
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	return HistoricalView{
		store:         opts.Store,
		log:           opts.Logger,
		loc:           opts.Location,
		timeout:       opts.QueryTimeout,
		limit:         opts.HistoryLimit,
		eventLogLimit: opts.EventLogLimit,
		state:         StateLoading,
		viewport:      vp,
		width:         80,
	}
}

// Mount discards any previous data and fetches once.
func (v *HistoricalView) Mount() tea.Cmd {
	v.epoch++
	v.mounted = true
	v.state = StateLoading
	v.records = nil
	v.summary = tremor.Summary{}
	v.errMsg = ""
	v.loading = false
	v.viewport.GotoTop()
	v.refreshContent()

	v.log.Debug("historical view mounted (epoch %d, limit %d)", v.epoch, v.limit)
	return v.fetch()
}

// Unmount drops the view's data; an in-flight fetch is ignored when it lands.
func (v *HistoricalView) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.epoch++
	v.loading = false
	v.records = nil
	v.summary = tremor.Summary{}
	v.refreshContent()
}

// Refresh fetches again unless a fetch is already in flight.
func (v *HistoricalView) Refresh() tea.Cmd {
	if !v.mounted || v.loading {
		return nil
	}
	return v.fetch()
}

// Update handles fetch results.
func (v *HistoricalView) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(recentFetchedMsg); ok {
		return v.apply(msg)
	}
	return nil
}

// Scroll forwards a navigation message to the viewport.
func (v *HistoricalView) Scroll(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// SetSize resizes the scroll area and re-renders its content.
func (v *HistoricalView) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = height
	v.refreshContent()
}

func (v *HistoricalView) fetch() tea.Cmd {
	v.seq++
	v.loading = true
	st, timeout, limit, epoch, seq := v.store, v.timeout, v.limit, v.epoch, v.seq

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		records, err := st.FetchRecent(ctx, limit)
		return recentFetchedMsg{epoch: epoch, seq: seq, records: records, err: err}
	}
}

func (v *HistoricalView) apply(msg recentFetchedMsg) tea.Cmd {
	if !v.mounted || msg.epoch != v.epoch {
		return nil
	}
	if msg.seq <= v.applied {
		v.log.Debug("discarding stale historical response #%d (already applied #%d)", msg.seq, v.applied)
		return nil
	}
	v.applied = msg.seq
	v.loading = false

	if msg.err != nil {
		v.log.Error("fetching historical data: %v", msg.err)
		v.state = StateError
		v.errMsg = errRecentFailed
		v.refreshContent()
		return raiseNotice(NoticeError, noticeRecentFailed)
	}

	v.records = msg.records
	v.summary = tremor.Summarize(msg.records, v.eventLogLimit, v.loc)
	v.state = StateReady
	v.errMsg = ""
	v.refreshContent()

	if len(msg.records) == 0 {
		return raiseNotice(NoticeInfo, noticeNoHistorical)
	}
	return nil
}

// State returns the current load state.
func (v HistoricalView) State() ViewState { return v.state }

// Loading reports whether a fetch is in flight.
func (v HistoricalView) Loading() bool { return v.loading }

// Records returns the fetched readings, newest first.
func (v HistoricalView) Records() []tremor.SensorRecord { return v.records }

// Summary returns the derivations over the fetched readings.
func (v HistoricalView) Summary() tremor.Summary { return v.summary }

// Err returns the error message shown in the error panel.
func (v HistoricalView) Err() string { return v.errMsg }

// Mounted reports whether the view is mounted.
func (v HistoricalView) Mounted() bool { return v.mounted }

// View renders the tab: a fixed header plus the scrolling body.
func (v HistoricalView) View(width int, spin string) string {
	action := MutedStyle.Render("r Refresh Data")
	if v.loading {
		action = MutedStyle.Render("Loading...")
	}
	header := spread(TitleStyle.Render("Historical Data Analysis"), action, width)

	var body string
	switch {
	case v.loading && len(v.records) == 0:
		body = spin + " " + LabelStyle.Render("Loading historical data...")
	case v.state == StateError:
		body = ErrorPanelStyle.Render(v.errMsg)
	case v.state == StateReady && len(v.records) == 0:
		body = EmptyPanelStyle.Render(emptyHistoricalText)
	default:
		body = v.viewport.View()
	}
	return header + "\n\n" + body
}

// refreshContent re-renders the scrollable body into the viewport.
func (v *HistoricalView) refreshContent() {
	if len(v.records) == 0 {
		v.viewport.SetContent("")
		return
	}
	v.viewport.SetContent(v.renderContent(v.width))
}

func (v HistoricalView) renderContent(width int) string {
	s := v.summary
	sections := []string{
		v.renderSummaryCards(width),
		v.renderMotionPanel(width),
		v.renderPhysiologicalPanel(width),
		v.renderEventLog(width),
	}
	if s.Span > 0 {
		sections = append(sections, MutedStyle.Render(fmt.Sprintf("%d readings over %s", s.Records, s.Span.Round(time.Second))))
	}
	return strings.Join(sections, "\n")
}

func (v HistoricalView) renderSummaryCards(width int) string {
	s := v.summary
	events := []string{
		lipgloss.NewStyle().Foreground(ColorCritical).Bold(true).Render(fmt.Sprintf("%d", s.TremorEventCount)),
		MutedStyle.Render("Total detected events"),
	}
	heart := []string{
		lipgloss.NewStyle().Foreground(ColorHeartRate).Bold(true).Render(fmt.Sprintf("%d BPM", s.AverageHeartRate)),
		MutedStyle.Render("Across all recordings"),
	}

	if width >= BreakpointSideBySide {
		half := width / 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			renderCard("Tremor Events", events, half, ColorBorder),
			renderCard("Average Heart Rate", heart, width-half, ColorBorder),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderCard("Tremor Events", events, width, ColorBorder),
		renderCard("Average Heart Rate", heart, width, ColorBorder),
	)
}

// chartSeries is one plotted column of the chart data.
type chartSeries struct {
	label string
	color lipgloss.Color
	pick  func(tremor.ChartPoint) float64
}

func (v HistoricalView) renderMotionPanel(width int) string {
	series := []chartSeries{
		{"Accel RMS", ColorGraph, func(p tremor.ChartPoint) float64 { return p.AccelRMS }},
		{"Gyro RMS", ColorGraphAlt, func(p tremor.ChartPoint) float64 { return p.GyroRMS }},
		{"Accel Intensity", ColorHealthy, func(p tremor.ChartPoint) float64 { return p.AccelIntensity }},
		{"Gyro Intensity", ColorWarning, func(p tremor.ChartPoint) float64 { return p.GyroIntensity }},
	}
	lines := v.renderCharts(series, width)

	chartWidth := chartAreaWidth(width)
	tremorCol := tremor.Column(v.summary.Series, func(p tremor.ChartPoint) float64 { return p.Tremor })
	lines = append(lines, padTo(LabelStyle.Render("Tremor"), chartLabelWidth)+RenderMarkerRow(tremorCol, chartWidth, ColorCritical))
	lines = append(lines, v.renderAxis(chartWidth))

	return renderPanel("Motion Parameters", fmt.Sprintf("%d readings", len(v.records)), lines, width)
}

func (v HistoricalView) renderPhysiologicalPanel(width int) string {
	series := []chartSeries{
		{"Heart Rate", ColorHeartRate, func(p tremor.ChartPoint) float64 { return p.AvgBPM }},
		{"GSR", ColorGSR, func(p tremor.ChartPoint) float64 { return p.GSR }},
	}
	lines := v.renderCharts(series, width)
	lines = append(lines, v.renderAxis(chartAreaWidth(width)))

	return renderPanel("Physiological Parameters", fmt.Sprintf("%d readings", len(v.records)), lines, width)
}

// chartLabelWidth is the gutter reserved for series labels left of each chart.
const chartLabelWidth = 17

func chartAreaWidth(width int) int {
	w := width - 4 - chartLabelWidth
	if w < 10 {
		w = 10
	}
	return w
}

func (v HistoricalView) renderCharts(series []chartSeries, width int) []string {
	chartWidth := chartAreaWidth(width)
	var lines []string
	for _, s := range series {
		data := tremor.Column(v.summary.Series, s.pick)
		lo, hi := seriesRange(data)
		chart := strings.Split(RenderBrailleChart(data, chartWidth, chartHeight, lo, hi, s.color), "\n")

		label := lipgloss.NewStyle().Foreground(s.color).Render(s.label)
		scale := MutedStyle.Render(tremor.FormatFixed2(lo) + "-" + tremor.FormatFixed2(hi))
		for i, row := range chart {
			gutter := ""
			switch i {
			case 0:
				gutter = label
			case 1:
				gutter = scale
			}
			lines = append(lines, padTo(gutter, chartLabelWidth)+row)
		}
	}
	return lines
}

// renderAxis labels the shared time axis with its first and last timestamps.
func (v HistoricalView) renderAxis(chartWidth int) string {
	points := v.summary.Series
	if len(points) == 0 {
		return ""
	}
	first := points[0].Time
	last := points[len(points)-1].Time
	return strings.Repeat(" ", chartLabelWidth) + spread(MutedStyle.Render(first), MutedStyle.Render(last), chartWidth)
}

// Event log column widths.
var eventLogColumns = []struct {
	title string
	width int
}{
	{"Time", 21},
	{"Accel RMS", 11},
	{"Gyro RMS", 11},
	{"Heart Rate", 12},
	{"GSR", 10},
}

func (v HistoricalView) renderEventLog(width int) string {
	log := v.summary.EventLog
	title := fmt.Sprintf("Tremor Event Log (Latest %d)", v.eventLogLimit)

	if len(log) == 0 {
		lines := []string{MutedStyle.Render("No tremor events detected in this period")}
		return renderPanel(title, "0 events", lines, width)
	}

	headerStyle := lipgloss.NewStyle().Foreground(ColorTextSecondary).Bold(true)
	var header strings.Builder
	for _, c := range eventLogColumns {
		header.WriteString(padTo(headerStyle.Render(c.title), c.width))
	}

	lines := []string{header.String()}
	for _, p := range log {
		cells := []string{
			p.FullTime,
			tremor.FormatFixed2(p.AccelRMS),
			tremor.FormatFixed2(p.GyroRMS),
			tremor.FormatBPM(p.AvgBPM)+" BPM",
			tremor.FormatGSR(p.GSR),
		}
		var row strings.Builder
		for i, c := range eventLogColumns {
			row.WriteString(padTo(ValueStyle.Render(cells[i]), c.width))
		}
		lines = append(lines, row.String())
	}
	return renderPanel(title, fmt.Sprintf("%d events", len(log)), lines, width)
}
