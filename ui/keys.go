package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Filter     key.Binding
	LoadMore   key.Binding
	Nav        key.Binding
	Enter      key.Binding
	Back       key.Binding
	Open       key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev car")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next car")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
	PrevFilter: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev filter")),
	Filter:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "filter")),
	LoadMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	Nav:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "menu")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextFilter, k.LoadMore, k.Open, k.Nav, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.NextFilter, k.PrevFilter, k.Filter, k.LoadMore},
		{k.Open, k.Copy, k.Nav, k.Back},
		{k.Help, k.Quit},
	}
}
