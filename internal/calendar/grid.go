package calendar

import (
	"strings"
	"time"

	"github.com/lululau/minical/internal/dateutil"
)

// GridSize is the fixed number of cells: five Sunday-first weeks.
const GridSize = 35

// GridColumns is the number of days per grid row.
const GridColumns = 7

// Class is a bit set of cell classifications.
type Class uint8

const (
	ClassOffMonth Class = 1 << iota
	ClassToday
	ClassDisabled
	ClassSelected
)

var classNames = []struct {
	c    Class
	name string
}{
	{ClassOffMonth, "off-month"},
	{ClassToday, "today"},
	{ClassDisabled, "disabled"},
	{ClassSelected, "selected"},
}

// Has reports whether every bit of c2 is set.
func (c Class) Has(c2 Class) bool {
	return c&c2 == c2
}

// Names lists the set classes in a stable order.
func (c Class) Names() []string {
	var out []string
	for _, cn := range classNames {
		if c.Has(cn.c) {
			out = append(out, cn.name)
		}
	}
	return out
}

func (c Class) String() string {
	return strings.Join(c.Names(), " ")
}

// DayCell is one slot of the grid. Date is the zero time when the slot is
// hidden by hideOffMonths.
type DayCell struct {
	Date      time.Time
	Classes   Class
	Clickable bool
	Index     int
}

// Empty reports whether the cell carries no date.
func (c DayCell) Empty() bool {
	return c.Date.IsZero()
}

// regenerate rebuilds every cell from the active month.
func (e *Engine) regenerate() {
	year, month, _ := e.active.Date()
	e.daysInMonth = dateutil.DaysInMonth(int(month), year)
	e.prevMonthLastDay = dateutil.DaysInMonth(int(month)-1, year)
	offset := int(e.active.Weekday())
	e.prevMonthStartDay = e.prevMonthLastDay - offset + 1

	for i := range e.grid {
		e.grid[i] = e.buildCell(year, month, offset, i)
	}
	e.logger.Debug("grid regenerated",
		"component", "calendar",
		"active", dateutil.Format(e.active),
		"days", e.daysInMonth,
		"leading", offset)
}

func (e *Engine) buildCell(year int, month time.Month, offset, index int) DayCell {
	day := index - offset + 1
	if e.hideOffMonths && (day < 1 || day > e.daysInMonth) {
		return DayCell{Index: index}
	}
	date := dateutil.Date(year, month, day)
	return DayCell{
		Date:      date,
		Classes:   e.classify(date, true),
		Clickable: !dateutil.Before(date, e.today) && !e.isDisabled(date),
		Index:     index,
	}
}

// reclassify recomputes classes only; dates and clickability stay.
func (e *Engine) reclassify() {
	for i := range e.grid {
		if e.grid[i].Empty() {
			continue
		}
		e.grid[i].Classes = e.classify(e.grid[i].Date, true)
	}
}

// classify compares months by month number only, so the year of an
// off-month cell is never consulted.
func (e *Engine) classify(date time.Time, withSelected bool) Class {
	var c Class
	if date.Month() != e.active.Month() {
		c |= ClassOffMonth
	}
	if dateutil.SameDay(date, e.today) {
		c |= ClassToday
	}
	if e.isDisabled(date) {
		c |= ClassDisabled
	}
	if withSelected && dateutil.SameDay(date, e.selected) {
		c |= ClassSelected
	}
	return c
}

func (e *Engine) isDisabled(date time.Time) bool {
	_, ok := e.disabled[dateutil.AsTimestamp(date)]
	return ok
}
