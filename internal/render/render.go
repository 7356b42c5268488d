// Package render draws calendar engine state as terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/minical/internal/calendar"
	"github.com/lululau/minical/internal/textwidth"
)

const (
	cellWidth      = 5
	gridWidth      = cellWidth * calendar.GridColumns
	monthsPerRow   = 4
	yearsPerRow    = 3
	monthItemWidth = gridWidth / monthsPerRow
	yearItemWidth  = gridWidth / yearsPerRow
	noCursor       = -1

	prevArrow       = "‹"
	nextArrow       = "›"
	plainOffMonth   = "·"
	plainCursorMark = ">"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

// NoColor reports whether color output is disabled.
func NoColor() bool {
	return noColorMode
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	pastStyle     = lipgloss.NewStyle().Faint(true)
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	disabledStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#3B82F6"))
	lunarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1F2937")).
			Background(lipgloss.Color("#FEC260"))
	wrapperStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#475569")).
			Padding(0, 1)
)

// Options controls what is drawn besides the engine state.
type Options struct {
	// Cursor is the focused grid index, or negative for none.
	Cursor int
	// PickerCursor is the focused item of an open picker: a month index
	// (0-11) or a position in the year window (0-8).
	PickerCursor int
	// Lunar adds the lunar calendar label under every day.
	Lunar bool
}

// NoCursor returns Options that focus nothing.
func NoCursor() Options {
	return Options{Cursor: noCursor, PickerCursor: noCursor}
}

// Calendar draws the title and either the day grid or the open picker.
func Calendar(e *calendar.Engine, opts Options) string {
	var lines []string
	switch e.Picker().Mode {
	case calendar.PickerMonth:
		lines = monthPicker(e, opts.PickerCursor)
	case calendar.PickerYear:
		lines = yearPicker(e, opts.PickerCursor)
	default:
		lines = dayGrid(e, opts)
	}
	lines = append([]string{title(e), ""}, lines...)

	body := strings.Join(lines, "\n")
	if noColorMode {
		return body
	}
	return wrapperStyle.Render(body)
}

func title(e *calendar.Engine) string {
	var label string
	switch p := e.Picker(); p.Mode {
	case calendar.PickerMonth:
		label = fmt.Sprintf("%d", e.ActiveMonth().Year())
	case calendar.PickerYear:
		label = fmt.Sprintf("%s %d-%d %s", prevArrow, p.Years[0], p.Years[len(p.Years)-1], nextArrow)
	default:
		label = fmt.Sprintf("%s %s %s", prevArrow, e.Title(), nextArrow)
	}
	return textwidth.Center(paint(titleStyle, label), gridWidth)
}

func dayGrid(e *calendar.Engine, opts Options) []string {
	header := make([]string, 0, calendar.GridColumns)
	for _, name := range calendar.WeekdayNames {
		header = append(header, textwidth.Center(paint(headerStyle, name), cellWidth))
	}
	lines := []string{strings.Join(header, "")}

	grid := e.Grid()
	for row := 0; row < calendar.GridSize/calendar.GridColumns; row++ {
		week := grid[row*calendar.GridColumns : (row+1)*calendar.GridColumns]
		days := make([]string, len(week))
		for i, c := range week {
			days[i] = textwidth.Center(dayCell(c, c.Index == opts.Cursor), cellWidth)
		}
		lines = append(lines, strings.Join(days, ""))
		if opts.Lunar {
			lines = append(lines, lunarRow(week))
		}
	}
	return lines
}

func lunarRow(week []calendar.DayCell) string {
	labels := make([]string, len(week))
	for i, c := range week {
		labels[i] = textwidth.Center(paint(lunarStyle, lunarLabel(c.Date)), cellWidth)
	}
	return strings.Join(labels, "")
}

func dayCell(c calendar.DayCell, focused bool) string {
	if c.Empty() {
		return ""
	}
	text := fmt.Sprintf("%2d", c.Date.Day())
	if noColorMode {
		return plainDay(c, text, focused)
	}
	style := cellStyle(c)
	if focused {
		style = style.Underline(true)
	}
	return style.Render(text)
}

// cellStyle applies the highest priority class: selected, disabled, today,
// off-month, then days that cannot be picked.
func cellStyle(c calendar.DayCell) lipgloss.Style {
	switch {
	case c.Classes.Has(calendar.ClassSelected):
		return selectedStyle
	case c.Classes.Has(calendar.ClassDisabled):
		return disabledStyle
	case c.Classes.Has(calendar.ClassToday):
		return todayStyle
	case c.Classes.Has(calendar.ClassOffMonth):
		return dimStyle
	case !c.Clickable:
		return pastStyle
	default:
		return lipgloss.NewStyle()
	}
}

func plainDay(c calendar.DayCell, text string, focused bool) string {
	left, right := " ", " "
	switch {
	case c.Classes.Has(calendar.ClassSelected):
		left, right = "[", "]"
	case c.Classes.Has(calendar.ClassDisabled):
		left, right = "-", "-"
	case c.Classes.Has(calendar.ClassToday):
		left, right = "(", ")"
	case c.Classes.Has(calendar.ClassOffMonth):
		right = plainOffMonth
	}
	if focused {
		left = plainCursorMark
	}
	return left + text + right
}

func monthPicker(e *calendar.Engine, cursor int) []string {
	items := make([]string, len(calendar.MonthNames))
	for i, name := range calendar.MonthNames {
		active := e.IsActiveMonth(time.Month(i + 1))
		items[i] = textwidth.Center(pickerItem(name, active, i == cursor), monthItemWidth)
	}
	return pickerRows(items, monthsPerRow)
}

func yearPicker(e *calendar.Engine, cursor int) []string {
	years := e.Picker().Years
	items := make([]string, len(years))
	for i, y := range years {
		items[i] = textwidth.Center(pickerItem(fmt.Sprintf("%d", y), e.IsActiveYear(y), i == cursor), yearItemWidth)
	}
	return pickerRows(items, yearsPerRow)
}

func pickerItem(label string, active, focused bool) string {
	if noColorMode {
		left, right := " ", " "
		if active {
			left, right = "[", "]"
		}
		if focused {
			left = plainCursorMark
		}
		return left + label + right
	}
	style := lipgloss.NewStyle()
	if active {
		style = selectedStyle
	}
	if focused {
		style = style.Underline(true)
	}
	return style.Render(label)
}

func pickerRows(items []string, perRow int) []string {
	var rows []string
	for i := 0; i < len(items); i += perRow {
		end := min(i+perRow, len(items))
		rows = append(rows, textwidth.Center(strings.Join(items[i:end], ""), gridWidth))
		if end < len(items) {
			rows = append(rows, "")
		}
	}
	return rows
}

func paint(style lipgloss.Style, s string) string {
	if noColorMode || s == "" {
		return s
	}
	return style.Render(s)
}
