// Package textwidth measures and pads text for fixed-width grid cells. A CJK
// character takes two columns; ANSI colour sequences take none.
package textwidth

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Width returns the widest line of s in monospace columns.
func Width(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lineWidth(line))
	}
	return w
}

// PadRight appends spaces until s is width columns wide.
func PadRight(s string, width int) string {
	return s + fill(width-Width(s))
}

// PadLeft prepends spaces until s is width columns wide.
func PadLeft(s string, width int) string {
	return fill(width-Width(s)) + s
}

// Center pads s on both sides; an odd remainder goes to the right.
func Center(s string, width int) string {
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	return fill(gap/2) + s + fill(gap-gap/2)
}

func fill(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// lineWidth measures Han-only text by its GBK length, which is two bytes per
// character. GBK also stores some one-column punctuation such as '·' in two
// bytes, so everything else goes through lipgloss.
func lineWidth(s string) int {
	clean := ansi.Strip(s)
	if clean == "" {
		return 0
	}
	if !allHan(clean) {
		return lipgloss.Width(clean)
	}
	encoded, _, err := transform.String(simplifiedchinese.GBK.NewEncoder(), clean)
	if err != nil {
		return lipgloss.Width(clean)
	}
	return len(encoded)
}

func allHan(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}
