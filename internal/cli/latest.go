package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
	"github.com/rileyhilliard/tremor/internal/ui"
)

// statusOut receives spinners and other progress output so stdout stays
// parseable. Tests point it at io.Discard.
var statusOut io.Writer = os.Stderr

// latestCommand fetches the newest reading and prints it.
func latestCommand(ctx context.Context, w io.Writer, asJSON bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	record, err := fetchLatest(ctx, st, cfg.Store.QueryTimeout, !asJSON)
	if err != nil {
		return wrapQueryError(err)
	}

	if asJSON {
		return WriteJSONSuccess(w, record)
	}
	fmt.Fprint(w, renderLatest(record))
	return nil
}

func fetchLatest(ctx context.Context, st store.Store, timeout time.Duration, showSpinner bool) (tremor.SensorRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !showSpinner {
		return st.FetchLatest(ctx)
	}

	spinner := ui.NewSpinner(statusOut, "Fetching latest reading")
	spinner.Start()
	record, err := st.FetchLatest(ctx)
	if err != nil {
		spinner.Fail()
		return record, err
	}
	spinner.Success()
	return record, nil
}

// renderLatest lays a reading out as the status card fields.
func renderLatest(r tremor.SensorRecord) string {
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Reading #%d", r.ID))

	pairs := []ui.KeyValue{
		{Key: "Recorded", Value: tremor.FullTime(r.CreatedAt, nil)},
		{Key: "Status", Value: ui.TremorLabel(r.IsTremor)},
		{Key: "Accel RMS", Value: tremor.FormatFixed2(r.AccelRMS)},
		{Key: "Gyro RMS", Value: tremor.FormatFixed2(r.GyroRMS)},
		{Key: "Accel intensity", Value: tremor.FormatFixed2(r.AccelIntensity)},
		{Key: "Gyro intensity", Value: tremor.FormatFixed2(r.GyroIntensity)},
		{Key: "Heart rate", Value: tremor.FormatBPM(r.AvgBPM) + " BPM"},
		{Key: "GSR", Value: tremor.FormatGSR(r.GSR)},
	}
	return "\n" + title + "\n\n" + ui.RenderKeyValues(pairs) + "\n"
}
