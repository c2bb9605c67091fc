package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// Phase is one timed step of a CLI command (connect, migrate, check).
type Phase struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Skipped   bool
	Error     error
}

// Duration returns the phase duration.
func (p Phase) Duration() time.Duration {
	if p.EndTime.IsZero() {
		return time.Since(p.StartTime)
	}
	return p.EndTime.Sub(p.StartTime)
}

// PhaseDisplay renders phase status to an output writer.
type PhaseDisplay struct {
	w      io.Writer
	now    func() time.Time
	phases []Phase
}

// NewPhaseDisplay creates a new phase display writing to w.
func NewPhaseDisplay(w io.Writer) *PhaseDisplay {
	return &PhaseDisplay{
		w:   w,
		now: time.Now,
	}
}

// Step runs fn as a named phase: the progress line is shown while fn runs
// and replaced by a success or failure line with the elapsed time.
// The error from fn is returned unchanged.
func (pd *PhaseDisplay) Step(name string, fn func() error) error {
	p := Phase{Name: name, StartTime: pd.now()}
	pd.RenderProgress(name)

	err := fn()
	p.EndTime = pd.now()
	p.Error = err
	p.Success = err == nil
	pd.phases = append(pd.phases, p)

	if err != nil {
		pd.RenderFailed(name, p.Duration(), err)
		return err
	}
	pd.RenderSuccess(name, p.Duration())
	return nil
}

// Skip records a phase that did not run.
func (pd *PhaseDisplay) Skip(name, reason string) {
	now := pd.now()
	pd.phases = append(pd.phases, Phase{Name: name, StartTime: now, EndTime: now, Skipped: true})
	pd.RenderSkipped(name, reason)
}

// Phases returns the phases recorded by Step and Skip, in order.
func (pd *PhaseDisplay) Phases() []Phase {
	return pd.phases
}

// RenderProgress renders a phase in progress.
// Shows: ◐ Connecting to store...
func (pd *PhaseDisplay) RenderProgress(name string) {
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	fmt.Fprintf(pd.w, "\r%s %s...", style.Render(SymbolProgress), name)
}

// RenderSuccess renders a completed phase.
// Shows: ● Connected (0.3s)
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	pd.clearLine()
	fmt.Fprintln(pd.w, FormatPhase(SymbolComplete, ColorSuccess, name, formatDuration(duration)))
}

// RenderFailed renders a failed phase followed by the error, indented.
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration, err error) {
	pd.clearLine()
	fmt.Fprintln(pd.w, FormatPhase(SymbolFail, ColorError, name, formatDuration(duration)))
	if err != nil {
		errStyle := lipgloss.NewStyle().Foreground(ColorError)
		fmt.Fprintf(pd.w, "    %s\n", errStyle.Render(err.Error()))
	}
}

// RenderSkipped renders a skipped phase.
// Shows: ⊘ Applying migrations (custom table)
func (pd *PhaseDisplay) RenderSkipped(name string, reason string) {
	pd.clearLine()

	symbolStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	reasonStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if reason != "" {
		fmt.Fprintf(pd.w, "%s %s %s\n",
			symbolStyle.Render(SymbolSkipped),
			name,
			reasonStyle.Render("("+reason+")"),
		)
	} else {
		fmt.Fprintf(pd.w, "%s %s\n", symbolStyle.Render(SymbolSkipped), name)
	}
}

// RenderSubStatus renders an indented sub-status line.
// Shows:   ○ schema version                                   2
func (pd *PhaseDisplay) RenderSubStatus(symbol string, name string, status string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "  %s %s %s\n",
		style.Render(symbol),
		name,
		style.Render(status),
	)
}

// Divider renders a horizontal line to separate phases from command output.
func (pd *PhaseDisplay) Divider() {
	fmt.Fprintf(pd.w, "\n%s\n\n", FormatDivider(DividerWidth))
}

// Newline writes an empty line.
func (pd *PhaseDisplay) Newline() {
	fmt.Fprintln(pd.w)
}

// clearLine clears the current line (for overwriting progress output).
func (pd *PhaseDisplay) clearLine() {
	fmt.Fprint(pd.w, "\r"+strings.Repeat(" ", 80)+"\r")
}

// FormatPhase returns a formatted phase line as a string.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name string, timing string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render(timing))
}

// FormatDivider returns a divider line as a string.
func FormatDivider(width int) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	return style.Render(strings.Repeat("━", width))
}
