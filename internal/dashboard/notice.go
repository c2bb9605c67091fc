package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoticeKind distinguishes informational notices from errors.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// String returns the kind name.
func (k NoticeKind) String() string {
	switch k {
	case NoticeInfo:
		return "info"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a transient message shown above the footer until it expires.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Notice texts.
const (
	noticeLatestFailed  = "Failed to fetch data"
	noticeRecentFailed  = "Failed to fetch historical data"
	noticeNoHistorical  = "No historical data found"
	errLatestFailed     = "Failed to fetch data. Please try again later."
	errRecentFailed     = "Failed to fetch historical data. Please try again later."
	emptyHistoricalText = "No historical data available"
)

// raiseNotice returns a command that shows a notice in the shell.
func raiseNotice(kind NoticeKind, text string) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{notice: Notice{Kind: kind, Text: text}}
	}
}

var (
	noticeInfoStyle = lipgloss.NewStyle().
			Foreground(ColorDarkBg).
			Background(ColorGraph).
			Bold(true).
			Padding(0, 1)

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorCritical).
				Bold(true).
				Padding(0, 1)
)

// renderNotice renders n as a one-line toast.
func renderNotice(n Notice) string {
	switch n.Kind {
	case NoticeError:
		return noticeErrorStyle.Render("✗ " + n.Text)
	default:
		return noticeInfoStyle.Render("ℹ " + n.Text)
	}
}
