// Package config reads the optional YAML file holding the picker's inbound
// properties.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lululau/minical/internal/calendar"
	"github.com/lululau/minical/internal/dateutil"
)

// AppName names the per-user config directory.
const AppName = "minical"

// File mirrors config.yaml. Dates are YYYY-MM-DD strings.
type File struct {
	Date          string     `yaml:"date"`
	MinDate       StringList `yaml:"minDate"`
	DisabledDates []string   `yaml:"disabledDates"`
	HideOffMonths bool       `yaml:"hideOffMonths"`
	HolidaysFile  string     `yaml:"holidaysFile"`
	Lunar         bool       `yaml:"lunar"`
	NoColor       bool       `yaml:"noColor"`
}

// StringList decodes either a single string or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a date or a list of dates", value.Line)
	}
}

// DefaultPath is config.yaml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// Load reads and parses path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("cannot read config yaml: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("cannot parse config yaml %s: %w", path, err)
	}
	return f, nil
}

// LoadOptional is Load, except a missing file yields an empty File.
func LoadOptional(path string) (File, error) {
	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, nil
	}
	return f, err
}

// Calendar converts the file into engine input. Malformed dates are errors
// here so the engine never sees them.
func (f File) Calendar() (calendar.Config, error) {
	var cfg calendar.Config
	if f.Date != "" {
		d, err := dateutil.ParseDate(f.Date)
		if err != nil {
			return calendar.Config{}, fmt.Errorf("date: %w", err)
		}
		cfg.InitialDate = d
	}
	minDates, err := dateutil.ParseDates(f.MinDate)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("minDate: %w", err)
	}
	disabled, err := dateutil.ParseDates(f.DisabledDates)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("disabledDates: %w", err)
	}
	cfg.MinDates = minDates
	cfg.DisabledDates = disabled
	cfg.HideOffMonths = f.HideOffMonths
	return cfg, nil
}
