package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds every binding the dashboard responds to. It satisfies
// help.KeyMap so the footer and the help overlay are generated from it.
type keyMap struct {
	NextTab    key.Binding
	PrevTab    key.Binding
	Realtime   key.Binding
	Historical key.Binding
	Refresh    key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Help       key.Binding
	Close      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Realtime: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "real-time data"),
		),
		Historical: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "historical analysis"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("pgdn", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Realtime, k.Historical},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Refresh, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.realtime.Unmount()
		m.historical.Unmount()
		return true, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		return true, m.switchTab(m.active.Next())

	case key.Matches(msg, m.keys.PrevTab):
		return true, m.switchTab(m.active.Prev())

	case key.Matches(msg, m.keys.Realtime):
		return true, m.switchTab(TabRealtime)

	case key.Matches(msg, m.keys.Historical):
		return true, m.switchTab(TabHistorical)

	case key.Matches(msg, m.keys.Refresh):
		if m.active == TabHistorical {
			return true, m.historical.Refresh()
		}
		return true, m.realtime.Refresh()
	}

	if m.active == TabHistorical {
		if key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown) {
			return true, m.historical.Scroll(msg)
		}
	}

	return false, nil
}
