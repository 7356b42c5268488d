package holidays

import (
	"encoding/json"
)

// Entry is one dated record of the holidays file. Holiday is false for
// make-up working days.
type Entry struct {
	Holiday bool   `json:"holiday"`
	Name    string `json:"name"`
	Wage    int    `json:"wage"`
	Date    string `json:"date"`
}

// UnmarshalJSON accepts holiday as a boolean or, in older files, as a string
// where any non-empty value means true.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type alias Entry
	aux := &struct {
		Holiday any `json:"holiday"`
		*alias
	}{
		alias: (*alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	switch v := aux.Holiday.(type) {
	case bool:
		e.Holiday = v
	case string:
		e.Holiday = v != ""
	default:
		e.Holiday = false
	}
	return nil
}

// file is the on-disk layout: one element per year, keyed by "MM-DD".
type file []struct {
	Year    string            `json:"year"`
	Holiday map[string]*Entry `json:"holiday"`
}

// YearRange summarises which years a Set covers.
type YearRange struct {
	Min   int
	Max   int
	Count int
}
