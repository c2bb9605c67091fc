package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Plain output so rendered strings can be compared directly
	lipgloss.SetColorProfile(termenv.Ascii)
}
