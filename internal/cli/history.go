package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
	"github.com/rileyhilliard/tremor/internal/ui"
)

const trendWidth = 40

// historyCommand fetches recent readings and prints their summary.
func historyCommand(ctx context.Context, w io.Writer, limitFlag int, asJSON bool) error {
	if err := ValidateLimit(limitFlag); err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	limit := cfg.Dashboard.HistoryLimit
	if limitFlag > 0 {
		limit = limitFlag
	}

	st, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := fetchRecent(ctx, st, cfg.Store.QueryTimeout, limit, !asJSON)
	if err != nil {
		return wrapQueryError(err)
	}

	summary := tremor.Summarize(records, cfg.Dashboard.EventLogLimit, nil)
	if asJSON {
		return WriteJSONSuccess(w, summary)
	}
	fmt.Fprint(w, renderHistory(summary, cfg.Dashboard.EventLogLimit))
	return nil
}

func fetchRecent(ctx context.Context, st store.Store, timeout time.Duration, limit int, showSpinner bool) ([]tremor.SensorRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !showSpinner {
		return st.FetchRecent(ctx, limit)
	}

	spinner := ui.NewSpinner(statusOut, fmt.Sprintf("Fetching last %d readings", limit))
	spinner.Start()
	records, err := st.FetchRecent(ctx, limit)
	if err != nil {
		spinner.Fail()
		return nil, err
	}
	spinner.Success()
	return records, nil
}

// renderHistory prints the summary cards, trend lines and tremor event log.
func renderHistory(s tremor.Summary, eventLogLimit int) string {
	headerStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	if s.Records == 0 {
		return "\n" + mutedStyle.Render("No historical data found") + "\n\n"
	}

	out := "\n" + headerStyle.Render("Historical Analysis")
	if s.Span > 0 {
		out += mutedStyle.Render(fmt.Sprintf("  %d readings over %s", s.Records, s.Span.Round(time.Second)))
	}
	out += "\n\n"

	out += ui.RenderKeyValues([]ui.KeyValue{
		{Key: "Readings", Value: strconv.Itoa(s.Records)},
		{Key: "Tremor events", Value: strconv.Itoa(s.TremorEventCount)},
		{Key: "Average heart rate", Value: fmt.Sprintf("%d BPM", s.AverageHeartRate)},
	})
	out += "\n"

	last := s.Series[len(s.Series)-1]
	out += ui.RenderTrend("Accel RMS", tremor.Column(s.Series, func(p tremor.ChartPoint) float64 { return p.AccelRMS }),
		trendWidth, ui.ColorInfo, tremor.FormatFixed2(last.AccelRMS)) + "\n"
	out += ui.RenderTrend("Gyro RMS", tremor.Column(s.Series, func(p tremor.ChartPoint) float64 { return p.GyroRMS }),
		trendWidth, ui.ColorSecondary, tremor.FormatFixed2(last.GyroRMS)) + "\n"
	out += ui.RenderTrend("Heart Rate", tremor.Column(s.Series, func(p tremor.ChartPoint) float64 { return p.AvgBPM }),
		trendWidth, ui.ColorError, tremor.FormatBPM(last.AvgBPM)) + "\n"
	out += ui.RenderTrend("GSR", tremor.Column(s.Series, func(p tremor.ChartPoint) float64 { return p.GSR }),
		trendWidth, ui.ColorSuccess, tremor.FormatGSR(last.GSR)) + "\n\n"

	out += headerStyle.Render(fmt.Sprintf("Tremor Event Log (Latest %d)", eventLogLimit)) + "\n"
	if len(s.EventLog) == 0 {
		return out + mutedStyle.Render("No tremor events recorded") + "\n\n"
	}

	rows := make([][]string, len(s.EventLog))
	for i, e := range s.EventLog {
		rows[i] = []string{
			e.FullTime,
			tremor.FormatFixed2(e.AccelRMS),
			tremor.FormatFixed2(e.GyroRMS),
			tremor.FormatBPM(e.AvgBPM),
			tremor.FormatGSR(e.GSR),
		}
	}
	out += ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Time", Width: 19},
		{Title: "Accel RMS", Width: 10},
		{Title: "Gyro RMS", Width: 10},
		{Title: "BPM", Width: 5},
		{Title: "GSR", Width: 8},
	}, rows)
	return out + "\n\n"
}
