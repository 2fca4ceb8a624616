package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for normal-mode interaction. Prompt modes
// (search, goto, fill, bookmark) route everything to the text input and
// only honor enter/escape.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Save          key.Binding
	Reload        key.Binding
	Backup        key.Binding
	RestoreBackup key.Binding

	Search     key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	Goto       key.Binding
	SelectA    key.Binding
	SelectB    key.Binding
	Fill       key.Binding
	Bookmark   key.Binding
	NextMark   key.Binding
	ColsDec    key.Binding
	ColsInc    key.Binding
	ColsHalve  key.Binding
	ColsDouble key.Binding
	LockX      key.Binding
	LockY      key.Binding

	ToggleText  key.Binding
	ToggleDebug key.Binding
	FocusNext   key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "cursor up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "cursor down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "cursor left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "cursor right")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "start of data")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "end of data")),

		Save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:        key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Backup:        key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "create backup")),
		RestoreBackup: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "restore backup")),

		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		Goto:       key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "goto offset")),
		SelectA:    key.NewBinding(key.WithKeys("("), key.WithHelp("(", "selection start")),
		SelectB:    key.NewBinding(key.WithKeys(")"), key.WithHelp(")", "selection end")),
		Fill:       key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fill selection")),
		Bookmark:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "add bookmark")),
		NextMark:   key.NewBinding(key.WithKeys("'"), key.WithHelp("'", "next bookmark")),
		ColsDec:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "fewer columns")),
		ColsInc:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more columns")),
		ColsHalve:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "halve columns")),
		ColsDouble: key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "double columns")),
		LockX:      key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "lock column on width change")),
		LockY:      key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "lock row on width change")),

		ToggleText:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle text pane")),
		ToggleDebug: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "debug overlay")),
		FocusNext:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit cell")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
