// Package holidays reads public-holiday data and turns it into dates the
// calendar should refuse.
package holidays

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/lululau/minical/internal/dateutil"
)

// ErrNoYears is returned by Years when the set is empty.
var ErrNoYears = errors.New("no year data found")

// cacheMaxAge is how long a cached holidays file stays trusted.
const cacheMaxAge = 6

// Set is a parsed holidays file indexed by day.
type Set struct {
	entries map[dateutil.Key]dated
	years   map[int]struct{}
}

type dated struct {
	date  time.Time
	entry Entry
}

// Load reads a holidays JSON file.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses holidays JSON. Entries whose year or "MM-DD" key does not
// parse are skipped.
func Decode(r io.Reader) (*Set, error) {
	var raw file
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse holidays JSON: %w", err)
	}

	s := &Set{
		entries: make(map[dateutil.Key]dated),
		years:   make(map[int]struct{}),
	}
	for _, y := range raw {
		year, err := strconv.Atoi(y.Year)
		if err != nil {
			continue
		}
		s.years[year] = struct{}{}
		for key, entry := range y.Holiday {
			if entry == nil {
				continue
			}
			md, err := time.Parse("01-02", key)
			if err != nil {
				continue
			}
			d := dateutil.Date(year, md.Month(), md.Day())
			s.entries[dateutil.AsTimestamp(d)] = dated{date: d, entry: *entry}
		}
	}
	return s, nil
}

// Lookup returns the entry for t's day.
func (s *Set) Lookup(t time.Time) (Entry, bool) {
	d, ok := s.entries[dateutil.AsTimestamp(t)]
	return d.entry, ok
}

// DisabledDates lists the days off in ascending order. Make-up working days
// are not included.
func (s *Set) DisabledDates() []time.Time {
	out := make([]time.Time, 0, len(s.entries))
	for _, d := range s.entries {
		if d.entry.Holiday {
			out = append(out, d.date)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Years reports the covered year range.
func (s *Set) Years() (YearRange, error) {
	if len(s.years) == 0 {
		return YearRange{}, ErrNoYears
	}
	r := YearRange{Min: math.MaxInt, Count: len(s.years)}
	for y := range s.years {
		r.Min = min(r.Min, y)
		r.Max = max(r.Max, y)
	}
	return r, nil
}

// CachePath returns where a downloaded holidays file is expected.
func CachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "minical", "holidays.json"), nil
}

// CacheValid reports whether path exists and was written within the last
// six months of now.
func CacheValid(path string, now time.Time) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.ModTime().After(now.AddDate(0, -cacheMaxAge, 0)), nil
}
