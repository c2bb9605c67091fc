package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/doctor"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/ui"
)

// doctorCommand implements the doctor command logic.
func doctorCommand(ctx context.Context, w io.Writer, asJSON bool) error {
	checks := doctor.NewConfigChecks(cfgFile)

	// Store checks only make sense once there is something to connect to;
	// the config checks already explain what is missing otherwise.
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err == nil && cfg.Store.DSN != "" {
		handle := doctor.NewStoreHandle(func(ctx context.Context) (store.Store, error) {
			return openStore(ctx, cfg.Store, logger.NewEnvLogger("[store]"))
		})
		defer handle.Close()
		checks = append(checks, doctor.NewStoreChecks(handle, cfg.Store.Table, cfg.Store.QueryTimeout)...)
	}

	results := runChecks(ctx, checks, !asJSON)

	if asJSON {
		return WriteJSONSuccess(w, doctor.NewReport(results))
	}
	outputDoctorText(w, results)
	return nil
}

func runChecks(ctx context.Context, checks []doctor.Check, showSpinner bool) []doctor.CheckResult {
	if !showSpinner {
		return doctor.RunAll(ctx, checks)
	}

	spinner := ui.NewSpinner(statusOut, fmt.Sprintf("Running %d checks", len(checks)))
	spinner.Start()
	results := doctor.RunAll(ctx, checks)
	spinner.Success()
	return results
}

// outputDoctorText outputs results grouped by category, then a summary.
func outputDoctorText(w io.Writer, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Tremor Diagnostic Report"))
	fmt.Fprintln(w)

	rows := make([]ui.DoctorCheckRow, len(results))
	for i, r := range results {
		rows[i] = ui.DoctorCheckRow{
			Status:     r.Status.String(),
			Category:   r.Category,
			Message:    r.Message,
			Suggestion: r.Suggestion,
		}
	}
	fmt.Fprint(w, ui.RenderDoctorTable(rows))

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	symbol := successStyle.Render(ui.SymbolSuccess)
	if doctor.HasIssues(results) {
		symbol = errorStyle.Render(ui.SymbolFail)
	}
	fmt.Fprintf(w, "%s %s\n\n", symbol, doctor.Summary(results))
}
