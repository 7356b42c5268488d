package calendar

// PickerMode says which overlay, if any, is open. Only one can be open.
type PickerMode int

const (
	PickerClosed PickerMode = iota
	PickerMonth
	PickerYear
)

const (
	yearWindowSize   = 9
	yearWindowBefore = 4
)

// YearWindow is the contiguous run of years shown by the year picker.
type YearWindow [yearWindowSize]int

func newYearWindow(anchor int) YearWindow {
	var w YearWindow
	for i := range w {
		w[i] = anchor - yearWindowBefore + i
	}
	return w
}

// Shift moves the window by a whole page in the given direction.
func (w YearWindow) Shift(dir Direction) YearWindow {
	start := w[0] - yearWindowSize
	if dir == Next {
		start = w[len(w)-1] + 1
	}
	return newYearWindow(start + yearWindowBefore)
}

// Contains reports whether year is on the page.
func (w YearWindow) Contains(year int) bool {
	return year >= w[0] && year <= w[len(w)-1]
}

// Picker is the overlay state. Years is meaningful only in PickerYear mode.
type Picker struct {
	Mode  PickerMode
	Years YearWindow
}

// Open reports whether any picker is shown.
func (p Picker) Open() bool {
	return p.Mode != PickerClosed
}
