package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Current  key.Binding
	Forecast key.Binding
	Coords   key.Binding
	Save     key.Binding
	Open     key.Binding
	Close    key.Binding
	Focus    key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Current: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "current"),
		),
		Forecast: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "forecast"),
		),
		Coords: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "coordinates"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "close connection"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scroll result"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Current, k.Forecast, k.Coords, k.Save, k.Open, k.Close, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Current, k.Forecast, k.Coords},
		{k.Save, k.Open, k.Close},
		{k.Focus, k.Quit},
	}
}

// promptKeys is shown while the open prompt is active.
type promptKeys struct {
	keyMap
}

// ShortHelp implements help.KeyMap.
func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
