package holidays

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lululau/minical/internal/dateutil"
)

const sample = `[
  {"year": "2024", "holiday": {
    "01-01": {"holiday": true, "name": "元旦", "wage": 3, "date": "2024-01-01"},
    "02-04": {"holiday": false, "name": "春节前补班", "wage": 1, "date": "2024-02-04"},
    "02-10": {"holiday": "yes", "name": "春节", "wage": 3, "date": "2024-02-10"},
    "bad":   {"holiday": true}
  }},
  {"year": "2025", "holiday": {
    "01-01": {"holiday": true, "name": "元旦", "wage": 3, "date": "2025-01-01"}
  }},
  {"year": "oops", "holiday": {}}
]`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	e, ok := s.Lookup(time.Date(2024, 2, 10, 15, 0, 0, 0, time.Local))
	require.True(t, ok)
	assert.True(t, e.Holiday)
	assert.Equal(t, "春节", e.Name)

	e, ok = s.Lookup(dateutil.Date(2024, time.February, 4))
	require.True(t, ok)
	assert.False(t, e.Holiday)

	_, ok = s.Lookup(dateutil.Date(2024, time.February, 5))
	assert.False(t, ok)

	got := make([]string, 0)
	for _, d := range s.DisabledDates() {
		got = append(got, dateutil.Format(d))
	}
	assert.Equal(t, []string{"2024-01-01", "2024-02-10", "2025-01-01"}, got)

	years, err := s.Years()
	require.NoError(t, err)
	assert.Equal(t, YearRange{Min: 2024, Max: 2025, Count: 2}, years)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"year": 2024}`))
	assert.Error(t, err)

	s, err := Decode(strings.NewReader(`[]`))
	require.NoError(t, err)
	_, err = s.Years()
	assert.ErrorIs(t, err, ErrNoYears)
}

func TestLoadAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.json")

	valid, err := CacheValid(path, time.Now())
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.DisabledDates(), 3)

	valid, err = CacheValid(path, time.Now())
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = CacheValid(path, time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.False(t, valid)
}
