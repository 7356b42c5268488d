package render

import (
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"
)

// Gregorian year range supported by the lunar library.
const (
	minLunarYear = 1900
	maxLunarYear = 3000
)

// lunarLabel picks the text shown beneath a day: the solar term if one
// starts that day, the lunar month name on its first day, otherwise the
// lunar day.
func lunarLabel(day time.Time) string {
	if day.IsZero() || day.Year() < minLunarYear || day.Year() > maxLunarYear {
		return ""
	}
	cal := calendarlib.BySolar(
		int64(day.Year()),
		int64(day.Month()),
		int64(day.Day()),
		12, 0, 0,
	)
	if term := cal.Solar.CurrentSolarterm; term != nil && term.IsInDay(&day) {
		return term.Alias()
	}
	dayAlias := cal.Lunar.DayAlias()
	if dayAlias == "初一" && cal.Lunar.MonthAlias() != "" {
		return cal.Lunar.MonthAlias()
	}
	return dayAlias
}
