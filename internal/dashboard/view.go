package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout breakpoints
const (
	// BreakpointSideBySide is the width from which cards sit side by side.
	BreakpointSideBySide = 100
	// defaultWidth is used until the first WindowSizeMsg arrives.
	defaultWidth = 80
	// chromeHeight is the number of rows around the active tab's body:
	// title, tabs, blank, tab header, blank, notice, footer.
	chromeHeight = 7
)

// renderDashboard renders the full screen.
func (m Model) renderDashboard() string {
	width := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.renderTitle(width))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.active {
	case TabHistorical:
		b.WriteString(m.historical.View(width, m.spinner.View()))
	default:
		b.WriteString(m.realtime.View(width, m.spinner.View()))
	}

	b.WriteString("\n")
	if m.noticeShown {
		b.WriteString(renderNotice(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderTitle(width int) string {
	left := "Tremor Insight Hub"
	right := "polling every " + m.opts.PollInterval.String()
	inner := width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return HeaderStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(allTabs))
	for _, t := range allTabs {
		style := TabInactiveStyle
		if t == m.active {
			style = TabActiveStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// contentWidth returns the terminal width, or a default before the first resize.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// bodyHeight returns the rows left for the active tab's scrollable body.
func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

// renderCard renders a titled card occupying outerWidth columns including
// its border and right margin.
func renderCard(title string, lines []string, outerWidth int, border lipgloss.Color) string {
	content := CardTitleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	return CardStyle.
		BorderForeground(border).
		Width(cardStyleWidth(outerWidth)).
		Render(content)
}

// cardStyleWidth is the lipgloss width (content plus padding) for a card
// spanning outerWidth columns: border 2, right margin 1.
func cardStyleWidth(outerWidth int) int {
	w := outerWidth - 3
	if w < 12 {
		w = 12
	}
	return w
}

// cardContentWidth is the usable text width inside a card.
func cardContentWidth(outerWidth int) int {
	return cardStyleWidth(outerWidth) - 2
}

// renderPanel renders lines inside a section frame with a title and value header.
func renderPanel(title, value string, lines []string, width int) string {
	out := []string{SectionHeader(title, value, width)}
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width))
	}
	out = append(out, SectionFooter(width))
	return strings.Join(out, "\n")
}

// spread places left and right at opposite ends of width columns.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// padTo pads s with spaces to width visible columns.
func padTo(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-w)
}
