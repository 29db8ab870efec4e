package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	ZoomIn, ZoomOut       key.Binding
	Reset                 key.Binding
	Color                 key.Binding
	Attrs                 key.Binding
	Focus                 key.Binding
	Close                 key.Binding
	PanelUp, PanelDown    key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "pan left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "pan right")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "colour mode")),
		Attrs:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attributes")),
		Focus:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "zoom to row")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		PanelUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll panel")),
		PanelDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll panel")),
		Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Color, k.ZoomIn, k.ZoomOut, k.Attrs, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Reset, k.Color},
		{k.Attrs, k.Focus, k.Close},
		{k.PanelUp, k.PanelDown, k.Help, k.Quit},
	}
}
