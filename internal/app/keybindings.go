package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for tpdf.
type KeyMap struct {
	// Scrolling within a page
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding

	// Paging
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Jump list
	JumpBack    key.Binding
	JumpForward key.Binding

	// Actions
	Open          key.Binding
	Bookmark      key.Binding
	CommandMode   key.Binding
	HistoryToggle key.Binding
	Menu          key.Binding
	ThemeCycle    key.Binding
	Help          key.Binding
	Back          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half screen down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half screen up"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "n", " ", "pgdown"),
			key.WithHelp("l/→/Space", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left", "p", "pgup"),
			key.WithHelp("h/←", "previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last page"),
		),
		JumpBack: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+o", "jump back"),
		),
		JumpForward: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "jump forward"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle bookmark"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		HistoryToggle: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("Ctrl+h", "recent documents"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "show menu"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back / quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Bindings returns the bindings in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.NextPage, k.PrevPage, k.FirstPage, k.LastPage,
		k.JumpBack, k.JumpForward,
		k.ScrollDown, k.ScrollUp, k.HalfPageDown, k.HalfPageUp,
		k.Open, k.HistoryToggle, k.Bookmark, k.CommandMode,
		k.Menu, k.ThemeCycle, k.Help, k.Back, k.Quit,
	}
}
