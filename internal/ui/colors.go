package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for CLI output. ANSI codes keep the output readable on
// terminals without true color; the dashboard has its own hex palette.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// GradientColors are cycled by the CLI spinner.
var GradientColors = []lipgloss.Color{
	ColorSecondary,
	ColorInfo,
	ColorSuccess,
	ColorInfo,
}

// TremorLabel renders the tremor flag of a reading for CLI output.
func TremorLabel(isTremor bool) string {
	if isTremor {
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true).Render(SymbolTremor + " Tremor Detected")
	}
	return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess + " No Tremor")
}
