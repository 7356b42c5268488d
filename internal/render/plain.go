package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/minical/internal/calendar"
	"github.com/lululau/minical/internal/dateutil"
)

const defaultWidth = 100

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer io.Writer
	Engine *calendar.Engine
	Lunar  bool
	// Width is the terminal width used for centering; 0 detects it.
	Width int
}

// RunPlain renders the calendar exactly once, followed by the selected date
// and any warnings.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Engine == nil {
		opts.Engine = calendar.New(calendar.Config{})
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}

	ro := NoCursor()
	ro.Lunar = opts.Lunar
	out := Calendar(opts.Engine, ro)
	if w := lipgloss.Width(out); w < width {
		out = lipgloss.PlaceHorizontal(width, lipgloss.Center, out)
	}

	var sb strings.Builder
	sb.WriteString(out)
	sb.WriteString("\n\n")
	sb.WriteString(paint(dimStyle, "selected: "+dateutil.Format(opts.Engine.Selected())))
	for _, w := range opts.Engine.Warnings() {
		sb.WriteString("\n")
		sb.WriteString(Warning(w.Error()))
	}
	_, err := fmt.Fprintln(opts.Writer, sb.String())
	return err
}

// Warning styles a soft warning line.
func Warning(msg string) string {
	return paint(warningStyle, "warning: "+msg)
}

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return defaultWidth
}
