package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Tag       key.Binding
	Label     key.Binding
	Promotion key.Binding
	RaiseMin  key.Binding
	LowerMax  key.Binding
	ResetRng  key.Binding
	PageSize  key.Binding
	Prev      key.Binding
	Next      key.Binding
	Tab       key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Tag:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag")),
		Label:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "label")),
		Promotion: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "promotion")),
		RaiseMin:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "min up")),
		LowerMax:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "max down")),
		ResetRng:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "full range")),
		PageSize:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "page size")),
		Prev:      key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←", "prev")),
		Next:      key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→", "next")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "gallery/dashboard")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Tag, k.Label, k.Promotion, k.PageSize, k.Prev, k.Next, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Submit, k.Cancel},
		{k.Tag, k.Label, k.Promotion},
		{k.RaiseMin, k.LowerMax, k.ResetRng},
		{k.PageSize, k.Prev, k.Next, k.Tab, k.Quit},
	}
}
