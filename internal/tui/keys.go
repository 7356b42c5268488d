package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	PrevMonth   key.Binding
	NextMonth   key.Binding
	PrevYear    key.Binding
	NextYear    key.Binding
	MonthPicker key.Binding
	YearPicker  key.Binding
	Today       key.Binding
	GoTo        key.Binding
	Close       key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		PrevMonth:   key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev")),
		NextMonth:   key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next")),
		PrevYear:    key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "prev year")),
		NextYear:    key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "next year")),
		MonthPicker: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "months")),
		YearPicker:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "years")),
		Today:       key.NewBinding(key.WithKeys("."), key.WithHelp(".", "today")),
		GoTo:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.PrevMonth, k.NextMonth, k.MonthPicker, k.YearPicker, k.Today, k.GoTo, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Select},
		{k.PrevMonth, k.NextMonth, k.PrevYear, k.NextYear},
		{k.MonthPicker, k.YearPicker, k.Today, k.GoTo, k.Close, k.Quit},
	}
}
