package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all reader keybindings.
type keyMap struct {
	Quit       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	HalfDown   key.Binding
	HalfUp     key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	Top        key.Binding
	Bottom     key.Binding

	NextChapter key.Binding
	PrevChapter key.Binding
	Back        key.Binding
	Forward     key.Binding

	Search     key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	Annotate   key.Binding
	ViewNotes  key.Binding
	Bookmark   key.Binding
	MarginIn   key.Binding
	MarginOut  key.Binding
	Help       key.Binding
	ClearOrEsc key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ScrollDown: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "scroll down")),
		ScrollUp:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "scroll up")),
		HalfDown:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		HalfUp:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("space", "page down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("b", "page up")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		NextChapter: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next chapter")),
		PrevChapter: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev chapter")),
		Back:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "back")),
		Forward:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "forward")),

		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		Annotate:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "annotate selection")),
		ViewNotes:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view annotations")),
		Bookmark:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "bookmark")),
		MarginIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "widen margin")),
		MarginOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow margin")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		ClearOrEsc: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// helpEntries feed the help overlay, in display order.
func (k keyMap) helpEntries() []key.Binding {
	return []key.Binding{
		k.ScrollDown, k.ScrollUp, k.HalfDown, k.HalfUp, k.PageDown, k.PageUp,
		k.Top, k.Bottom, k.NextChapter, k.PrevChapter, k.Back, k.Forward,
		k.Search, k.NextMatch, k.PrevMatch, k.Annotate, k.ViewNotes,
		k.Bookmark, k.MarginIn, k.MarginOut, k.Help, k.Quit,
	}
}
