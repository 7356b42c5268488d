package calendar

import "time"

// MonthNames are the short month labels, January first.
var MonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WeekdayNames are the column headers of the grid, Sunday first.
var WeekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthByName resolves a label from MonthNames.
func MonthByName(name string) (time.Month, bool) {
	for i, n := range MonthNames {
		if n == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// MonthName returns the short label of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return MonthNames[m-1]
}
