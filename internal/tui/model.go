package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/minical/internal/calendar"
	"github.com/lululau/minical/internal/dateutil"
	"github.com/lululau/minical/internal/render"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))

const (
	monthPickerColumns = 4
	yearPickerColumns  = 3
	yearPickerItems    = len(calendar.YearWindow{})
)

type inputMode int

const (
	inputNone inputMode = iota
	inputDate
)

// Options configures the interactive picker.
type Options struct {
	Lunar bool
	// ExitOnSelect quits as soon as a day is chosen.
	ExitOnSelect bool
}

// Run starts the interactive Bubble Tea UI. The engine's selection handler
// receives every choice.
func Run(e *calendar.Engine, opts Options) error {
	m := newModel(e, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

type model struct {
	engine       *calendar.Engine
	opts         Options
	keys         keyMap
	help         help.Model
	input        textinput.Model
	inputMode    inputMode
	cursor       int
	pickerCursor int
	width        int
	statusMsg    string
}

func newModel(e *calendar.Engine, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Prompt = "> "

	m := model{
		engine: e,
		opts:   opts,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  ti,
	}
	m.focusDate(e.Selected())
	if w := e.Warnings(); len(w) > 0 {
		m.statusMsg = w[0].Error()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.engine.Picker().Open() {
			return m.handlePickerKey(msg)
		}
		return m.handleGridKey(msg)
	}
	return m, nil
}

func (m model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-calendar.GridColumns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(calendar.GridColumns)
	case key.Matches(msg, m.keys.PrevMonth):
		m.engine.CycleMonth(calendar.Prev)
	case key.Matches(msg, m.keys.NextMonth):
		m.engine.CycleMonth(calendar.Next)
	case key.Matches(msg, m.keys.PrevYear):
		m.engine.PickYear(m.engine.ActiveMonth().Year() - 1)
	case key.Matches(msg, m.keys.NextYear):
		m.engine.PickYear(m.engine.ActiveMonth().Year() + 1)
	case key.Matches(msg, m.keys.MonthPicker):
		m.engine.ToggleMonthPicker()
		m.pickerCursor = int(m.engine.ActiveMonth().Month()) - 1
	case key.Matches(msg, m.keys.YearPicker):
		m.engine.ToggleYearPicker()
		m.pickerCursor = yearPickerItems / 2
	case key.Matches(msg, m.keys.Today):
		m.jumpTo(m.engine.Today())
	case key.Matches(msg, m.keys.GoTo):
		m.activateInput()
	case key.Matches(msg, m.keys.Select):
		return m.selectCursor()
	}
	return m, nil
}

func (m model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.engine.Picker()
	columns, items := monthPickerColumns, len(calendar.MonthNames)
	if p.Mode == calendar.PickerYear {
		columns, items = yearPickerColumns, yearPickerItems
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.engine.ClosePickers()
	case key.Matches(msg, m.keys.MonthPicker):
		m.engine.ToggleMonthPicker()
		m.pickerCursor = int(m.engine.ActiveMonth().Month()) - 1
	case key.Matches(msg, m.keys.YearPicker):
		m.engine.ToggleYearPicker()
		m.pickerCursor = yearPickerItems / 2
	case key.Matches(msg, m.keys.Left):
		m.pickerCursor = clamp(m.pickerCursor-1, items)
	case key.Matches(msg, m.keys.Right):
		m.pickerCursor = clamp(m.pickerCursor+1, items)
	case key.Matches(msg, m.keys.Up):
		m.pickerCursor = clamp(m.pickerCursor-columns, items)
	case key.Matches(msg, m.keys.Down):
		m.pickerCursor = clamp(m.pickerCursor+columns, items)
	case key.Matches(msg, m.keys.PrevMonth), key.Matches(msg, m.keys.PrevYear):
		m.engine.CycleYear(calendar.Prev)
	case key.Matches(msg, m.keys.NextMonth), key.Matches(msg, m.keys.NextYear):
		m.engine.CycleYear(calendar.Next)
	case key.Matches(msg, m.keys.Select):
		if p.Mode == calendar.PickerMonth {
			m.engine.PickMonth(time.Month(m.pickerCursor + 1))
		} else {
			m.engine.PickYear(p.Years[m.pickerCursor])
		}
		m.focusDate(m.engine.Selected())
	}
	return m, nil
}

func (m model) selectCursor() (tea.Model, tea.Cmd) {
	cell, ok := m.engine.Cell(m.cursor)
	if !ok || cell.Empty() {
		return m, nil
	}
	if !cell.Clickable {
		m.statusMsg = dateutil.Format(cell.Date) + " cannot be selected"
		return m, nil
	}
	m.engine.SelectDay(m.cursor)
	m.focusDate(m.engine.Selected())
	m.statusMsg = "selected " + dateutil.Format(m.engine.Selected())
	if m.opts.ExitOnSelect {
		return m, tea.Quit
	}
	return m, nil
}

// moveCursor steps through the grid, paging months at the edges.
func (m *model) moveCursor(delta int) {
	target := m.cursor + delta
	if target >= 0 && target < calendar.GridSize {
		m.cursor = target
		return
	}
	date := m.dateAt(m.cursor).AddDate(0, 0, delta)
	if target < 0 {
		m.engine.CycleMonth(calendar.Prev)
	} else {
		m.engine.CycleMonth(calendar.Next)
	}
	if idx := m.engine.IndexOf(date); idx >= 0 {
		m.cursor = idx
		return
	}
	m.cursor = (target + calendar.GridSize) % calendar.GridSize
}

// dateAt is the date a grid index stands for, even when the cell is blank.
func (m model) dateAt(index int) time.Time {
	active := m.engine.ActiveMonth()
	return dateutil.Date(active.Year(), active.Month(), index-int(active.Weekday())+1)
}

func (m *model) jumpTo(date time.Time) {
	m.engine.PickYear(date.Year())
	m.engine.PickMonth(date.Month())
	m.focusDate(date)
}

// focusDate puts the cursor on date, or on the 1st when it is not shown.
func (m *model) focusDate(date time.Time) {
	if idx := m.engine.IndexOf(date); idx >= 0 {
		m.cursor = idx
		return
	}
	m.cursor = m.engine.IndexOf(m.engine.ActiveMonth())
}

func clamp(v, n int) int {
	return min(max(v, 0), n-1)
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}

	sb := strings.Builder{}
	sb.WriteString(render.Calendar(m.engine, render.Options{
		Cursor:       m.cursor,
		PickerCursor: m.pickerCursor,
		Lunar:        m.opts.Lunar,
	}))
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))
	if m.statusMsg != "" {
		sb.WriteString("\n")
		if render.NoColor() {
			sb.WriteString(m.statusMsg)
		} else {
			sb.WriteString(statusStyle.Render(m.statusMsg))
		}
	}
	return sb.String()
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.statusMsg = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput() {
	m.inputMode = inputDate
	m.input.SetValue("")
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

func (m *model) applyInput() {
	date, err := dateutil.ParseDate(m.input.Value())
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.jumpTo(date)
	m.statusMsg = ""
	m.inputMode = inputNone
	m.input.Blur()
}

func (m model) inputView() string {
	label := "Go to date (enter to confirm / esc to cancel)"
	view := m.input.View()
	if m.statusMsg != "" {
		view += "\n" + m.statusMsg
	}
	if render.NoColor() {
		return label + "\n\n" + view
	}
	return lipgloss.NewStyle().
		Bold(true).
		Render(label) + "\n\n" + view
}
