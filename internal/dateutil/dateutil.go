// Package dateutil holds the day-granularity helpers shared by the calendar
// engine and its hosts. All values are local calendar dates.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a string cannot be read as a calendar date.
var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

const layoutDay = "2006-01-02"

// Date builds a local midnight date. Out-of-range months and days roll into
// the neighbouring months and years the same way time.Date does, so day 0 is
// the last day of the previous month.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// DaysInMonth returns the number of days in the 1-based month of year.
// month may be 0 (December of the previous year) or 13 (January of the next).
func DaysInMonth(month, year int) int {
	return Date(year, time.Month(month+1), 0).Day()
}

// Normalize truncates t to local midnight.
func Normalize(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return Date(y, m, d)
}

// FirstOfMonth returns the 1st of t's month at local midnight.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.In(time.Local).Date()
	return Date(y, m, 1)
}

// Key is the canonical day key used for set membership and equality.
type Key int64

// AsTimestamp returns the day key of t. Two dates are interchangeable iff
// their keys are equal.
func AsTimestamp(t time.Time) Key {
	return Key(Normalize(t).Unix())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return AsTimestamp(a) == AsTimestamp(b)
}

// Before reports whether a's day is strictly earlier than b's.
func Before(a, b time.Time) bool {
	return AsTimestamp(a) < AsTimestamp(b)
}

// ParseDate reads YYYY-MM-DD (or RFC 3339, keeping only the local date).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if t, err := time.ParseInLocation(layoutDay, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Normalize(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseDates parses every value, stopping at the first failure.
func ParseDates(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(layoutDay)
}
