package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/minical/internal/calendar"
	"github.com/lululau/minical/internal/dateutil"
	"github.com/lululau/minical/internal/render"
)

type recorder struct {
	picked []time.Time
}

func newTestModel(t *testing.T, cfg calendar.Config, opts Options) (model, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := calendar.New(cfg,
		calendar.WithNow(func() time.Time { return time.Date(2024, 2, 15, 9, 0, 0, 0, time.Local) }),
		calendar.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		calendar.WithSelectionHandler(func(d time.Time) { rec.picked = append(rec.picked, d) }),
	)
	return newModel(e, opts), rec
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelFocusesSelection(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})
	if m.cursor != 18 {
		t.Fatalf("expected cursor on Feb 15 (18), got %d", m.cursor)
	}
}

func TestSelectMovesCursorAndNotifies(t *testing.T) {
	m, rec := newTestModel(t, calendar.Config{}, Options{})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatalf("should not quit without ExitOnSelect")
	}
	if len(rec.picked) != 1 || dateutil.Format(rec.picked[0]) != "2024-02-16" {
		t.Fatalf("unexpected selections: %v", rec.picked)
	}
	if m.statusMsg != "selected 2024-02-16" {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}
}

func TestSelectRejectsPastDays(t *testing.T) {
	m, rec := newTestModel(t, calendar.Config{}, Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyEnter})
	if len(rec.picked) != 0 {
		t.Fatalf("past day must not be selected, got %v", rec.picked)
	}
	if !strings.Contains(m.statusMsg, "cannot be selected") {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}
}

func TestExitOnSelect(t *testing.T) {
	m, rec := newTestModel(t, calendar.Config{}, Options{ExitOnSelect: true})
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Fatalf("expected quit after selecting")
	}
	if len(rec.picked) != 1 {
		t.Fatalf("expected one selection, got %d", len(rec.picked))
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})
	if _, cmd := press(t, m, runes("q")); !isQuit(cmd) {
		t.Fatalf("expected quit on q")
	}
}

func TestMonthNavigation(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})

	m, _ = press(t, m, runes("]"))
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2024-03-01" {
		t.Fatalf("expected March after ], got %s", got)
	}
	m, _ = press(t, m, runes("["), runes("["))
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2024-01-01" {
		t.Fatalf("expected January after [[, got %s", got)
	}
	m, _ = press(t, m, runes("{"))
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2023-01-01" {
		t.Fatalf("expected January 2023 after {, got %s", got)
	}
}

func TestCursorPagesAtGridEdge(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})
	m.cursor = 32 // Feb 29

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2024-03-01" {
		t.Fatalf("expected March, got %s", got)
	}
	cell, _ := m.engine.Cell(m.cursor)
	if dateutil.Format(cell.Date) != "2024-03-07" {
		t.Fatalf("expected cursor on Mar 7, got %s", dateutil.Format(cell.Date))
	}
}

func TestMonthPicker(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})

	m, _ = press(t, m, runes("m"))
	if m.engine.Picker().Mode != calendar.PickerMonth || m.pickerCursor != 1 {
		t.Fatalf("expected month picker on Feb, got mode=%v cursor=%d", m.engine.Picker().Mode, m.pickerCursor)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2024-07-01" {
		t.Fatalf("expected July, got %s", got)
	}
	if m.engine.Picker().Open() {
		t.Fatalf("picker should close after picking")
	}
}

func TestYearPicker(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})

	m, _ = press(t, m, runes("y"), runes("["))
	years := m.engine.Picker().Years
	if years[0] != 2011 || years[len(years)-1] != 2019 {
		t.Fatalf("unexpected window %v", years)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2015-02-01" {
		t.Fatalf("expected Feb 2015, got %s", got)
	}

	m, _ = press(t, m, runes("y"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.engine.Picker().Open() {
		t.Fatalf("esc should close the picker")
	}
}

func TestGoToDate(t *testing.T) {
	m, _ := newTestModel(t, calendar.Config{}, Options{})

	m, _ = press(t, m, runes("g"), runes("nope"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.inputMode != inputDate || !strings.Contains(m.statusMsg, "YYYY-MM-DD") {
		t.Fatalf("bad input should keep the prompt open, status=%q", m.statusMsg)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("g"), runes("2025-07-04"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.inputMode != inputNone {
		t.Fatalf("expected prompt closed")
	}
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2025-07-01" {
		t.Fatalf("expected July 2025, got %s", got)
	}
	if m.cursor != 5 {
		t.Fatalf("expected cursor on Jul 4 (5), got %d", m.cursor)
	}

	m, _ = press(t, m, runes("."))
	if got := dateutil.Format(m.engine.ActiveMonth()); got != "2024-02-01" || m.cursor != 18 {
		t.Fatalf("expected back on today, got %s cursor=%d", got, m.cursor)
	}
}

func TestViewShowsWarning(t *testing.T) {
	render.SetNoColor(true)
	t.Cleanup(func() { render.SetNoColor(false) })

	m, _ := newTestModel(t, calendar.Config{
		InitialDate:   dateutil.Date(2024, time.February, 20),
		DisabledDates: []time.Time{dateutil.Date(2024, time.February, 20)},
	}, Options{})
	view := m.View()
	if !strings.Contains(view, "Feb 2024") {
		t.Fatalf("expected title in view:\n%s", view)
	}
	if !strings.Contains(view, "part of disabled dates") {
		t.Fatalf("expected warning in view:\n%s", view)
	}
}
