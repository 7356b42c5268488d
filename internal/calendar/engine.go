// Package calendar computes the visible day grid of a month calendar and
// owns the navigation and selection state around it. An Engine is not safe
// for concurrent use; hosts must serialise calls.
package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lululau/minical/internal/dateutil"
)

// ErrSelectedDisabled is recorded when the initial selection is one of the
// disabled dates. The selection still stands.
var ErrSelectedDisabled = errors.New("selected date is part of disabled dates")

// Direction is the way month and year navigation moves.
type Direction int

const (
	// Prev moves back one month, or one year window.
	Prev Direction = -1
	// Next moves forward one month, or one year window.
	Next Direction = 1
)

// Config carries the inbound properties read at construction.
type Config struct {
	// InitialDate is selected on start. The zero value selects today.
	InitialDate time.Time
	// MinDates is accepted and exposed but does not affect clickability.
	MinDates      []time.Time
	DisabledDates []time.Time
	HideOffMonths bool
}

// Engine holds the navigation state and the derived grid.
type Engine struct {
	now      func() time.Time
	logger   *slog.Logger
	onSelect func(time.Time)

	today    time.Time
	selected time.Time
	active   time.Time
	minDates []time.Time
	disabled map[dateutil.Key]struct{}

	hideOffMonths bool
	picker        Picker
	warnings      []error

	daysInMonth       int
	prevMonthLastDay  int
	prevMonthStartDay int
	grid              [GridSize]DayCell
}

// Option configures the Engine.
type Option func(*Engine)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger used for warnings and debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSelectionHandler registers the callback fired once per SelectDay.
func WithSelectionHandler(fn func(selected time.Time)) Option {
	return func(e *Engine) {
		e.onSelect = fn
	}
}

// New initialises an Engine. Today is read from the clock once and kept for
// the engine's lifetime.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.today = dateutil.Normalize(e.now())
	e.selected = e.today
	if !cfg.InitialDate.IsZero() {
		e.selected = dateutil.Normalize(cfg.InitialDate)
	}
	e.active = dateutil.FirstOfMonth(e.selected)
	e.hideOffMonths = cfg.HideOffMonths

	for _, d := range cfg.MinDates {
		e.minDates = append(e.minDates, dateutil.Normalize(d))
	}
	e.setDisabled(cfg.DisabledDates)
	if e.classify(e.selected, false).Has(ClassDisabled) {
		e.warn(fmt.Errorf("%w: %s", ErrSelectedDisabled, dateutil.Format(e.selected)))
	}

	e.regenerate()
	return e
}

func (e *Engine) setDisabled(dates []time.Time) {
	e.disabled = make(map[dateutil.Key]struct{}, len(dates))
	for _, d := range dates {
		e.disabled[dateutil.AsTimestamp(d)] = struct{}{}
	}
}

func (e *Engine) warn(err error) {
	e.warnings = append(e.warnings, err)
	e.logger.Warn(err.Error(), "component", "calendar", "selected", dateutil.Format(e.selected))
}

// Today returns the day captured at construction.
func (e *Engine) Today() time.Time { return e.today }

// Selected returns the current selection.
func (e *Engine) Selected() time.Time { return e.selected }

// ActiveMonth returns the first day of the displayed month.
func (e *Engine) ActiveMonth() time.Time { return e.active }

// MinDates returns the pass-through minimum dates.
func (e *Engine) MinDates() []time.Time {
	return append([]time.Time(nil), e.minDates...)
}

// HideOffMonths reports whether leading and trailing cells are blanked.
func (e *Engine) HideOffMonths() bool { return e.hideOffMonths }

// Picker returns the overlay state.
func (e *Engine) Picker() Picker { return e.picker }

// Warnings returns the soft warnings raised so far.
func (e *Engine) Warnings() []error {
	return append([]error(nil), e.warnings...)
}

// Grid returns a copy of the 35 cells.
func (e *Engine) Grid() []DayCell {
	out := make([]DayCell, GridSize)
	copy(out, e.grid[:])
	return out
}

// Cell returns the cell at index.
func (e *Engine) Cell(index int) (DayCell, bool) {
	if index < 0 || index >= GridSize {
		return DayCell{}, false
	}
	return e.grid[index], true
}

// IndexOf returns the grid index holding date, or -1.
func (e *Engine) IndexOf(date time.Time) int {
	for i, c := range e.grid {
		if !c.Empty() && dateutil.SameDay(c.Date, date) {
			return i
		}
	}
	return -1
}

// PrevMonthStartDay is the day of the previous month shown in cell 0.
func (e *Engine) PrevMonthStartDay() int { return e.prevMonthStartDay }

// DaysInMonth is the length of the active month.
func (e *Engine) DaysInMonth() int { return e.daysInMonth }

// IsActiveMonth reports whether m is the displayed month.
func (e *Engine) IsActiveMonth(m time.Month) bool { return e.active.Month() == m }

// IsActiveYear reports whether year is the displayed year.
func (e *Engine) IsActiveYear(year int) bool { return e.active.Year() == year }

// Title is the header label, e.g. "Feb 2024".
func (e *Engine) Title() string {
	return fmt.Sprintf("%s %d", MonthName(e.active.Month()), e.active.Year())
}

// SelectDay selects the date in the cell at index. Clickability is not
// checked; that is the caller's job. It returns false, changing nothing, when
// the cell does not exist or has no date.
func (e *Engine) SelectDay(index int) bool {
	cell, ok := e.Cell(index)
	if !ok || cell.Empty() {
		return false
	}
	e.selected = cell.Date

	y, m, _ := cell.Date.Date()
	if y != e.active.Year() || m != e.active.Month() {
		e.active = dateutil.Date(y, m, 1)
		e.regenerate()
	} else {
		e.reclassify()
	}

	e.logger.Debug("date selected", "component", "calendar", "selected", dateutil.Format(e.selected))
	if e.onSelect != nil {
		e.onSelect(e.selected)
	}
	return true
}

// CycleMonth moves the active month one step, rolling the year as needed.
func (e *Engine) CycleMonth(dir Direction) {
	e.active = dateutil.Date(e.active.Year(), e.active.Month()+time.Month(dir), 1)
	e.regenerate()
}

// CycleYear pages the year picker window. It does nothing unless the year
// picker is open, and never touches the active month.
func (e *Engine) CycleYear(dir Direction) {
	if e.picker.Mode != PickerYear {
		return
	}
	e.picker.Years = e.picker.Years.Shift(dir)
}

// PickMonth shows month m of the active year and closes the pickers.
func (e *Engine) PickMonth(m time.Month) {
	if m >= time.January && m <= time.December && m != e.active.Month() {
		e.active = dateutil.Date(e.active.Year(), m, 1)
		e.regenerate()
	}
	e.ClosePickers()
}

// PickMonthByName is PickMonth keyed by a MonthNames label. Unknown names
// only close the pickers.
func (e *Engine) PickMonthByName(name string) {
	m, _ := MonthByName(name)
	e.PickMonth(m)
}

// PickYear shows the active month in year and closes the pickers.
func (e *Engine) PickYear(year int) {
	if year != e.active.Year() {
		e.active = dateutil.Date(year, e.active.Month(), 1)
		e.regenerate()
	}
	e.ClosePickers()
}

// ToggleMonthPicker opens the month picker, or closes it if already open.
func (e *Engine) ToggleMonthPicker() {
	wasOpen := e.picker.Mode == PickerMonth
	e.ClosePickers()
	if !wasOpen {
		e.picker.Mode = PickerMonth
	}
}

// ToggleYearPicker opens the year picker on a window anchored at the active
// year, or closes it if already open.
func (e *Engine) ToggleYearPicker() {
	wasOpen := e.picker.Mode == PickerYear
	e.ClosePickers()
	if !wasOpen {
		e.picker = Picker{Mode: PickerYear, Years: newYearWindow(e.active.Year())}
	}
}

// ClosePickers hides both overlays.
func (e *Engine) ClosePickers() {
	e.picker = Picker{}
}

// SetDisabledDates replaces the disabled set and rebuilds the grid.
func (e *Engine) SetDisabledDates(dates []time.Time) {
	e.setDisabled(dates)
	e.regenerate()
}

// SetHideOffMonths toggles blanking of off-month cells and rebuilds the grid.
func (e *Engine) SetHideOffMonths(hide bool) {
	if hide == e.hideOffMonths {
		return
	}
	e.hideOffMonths = hide
	e.regenerate()
}
