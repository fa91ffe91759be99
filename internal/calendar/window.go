// Package calendar lays out multi-day tasks on a seven-column week grid.
//
// The pipeline is Filter (keep tasks overlapping the window), Pack (assign each
// task to the first lane it fits in) and MapToGrid (clamp each task to a column
// start and span). LayoutWeek runs all three. Every function is pure and safe
// for concurrent use.
package calendar

import (
	"fmt"
	"time"

	"github.com/javiermolinar/weekview/internal/dateutil"
)

// DaysInWindow is the number of columns in a week window.
const DaysInWindow = 7

// Window is seven consecutive days, one per grid column.
// Callers are responsible for passing consecutive dates when building one by hand.
type Window [DaysInWindow]dateutil.Date

// NewWindow returns the window starting on start.
func NewWindow(start dateutil.Date) Window {
	var w Window
	for i := range w {
		w[i] = start.AddDays(i)
	}
	return w
}

// WeekOf returns the window of the week containing d, beginning on first.
func WeekOf(d dateutil.Date, first time.Weekday) Window {
	return NewWindow(dateutil.WeekStart(d, first))
}

// Start returns the first day of the window.
func (w Window) Start() dateutil.Date { return w[0] }

// End returns the last day of the window.
func (w Window) End() dateutil.Date { return w[DaysInWindow-1] }

// Days returns the window days as a slice.
func (w Window) Days() []dateutil.Date {
	return w[:]
}

// Next returns the following week.
func (w Window) Next() Window { return NewWindow(w.Start().AddDays(DaysInWindow)) }

// Prev returns the preceding week.
func (w Window) Prev() Window { return NewWindow(w.Start().AddDays(-DaysInWindow)) }

// Contains reports whether d falls inside the window.
func (w Window) Contains(d dateutil.Date) bool {
	return !d.Before(w.Start()) && !d.After(w.End())
}

// Index returns the zero-based column of d, or -1 when d is outside the window.
func (w Window) Index(d dateutil.Date) int {
	if !w.Contains(d) {
		return -1
	}
	return d.Sub(w.Start())
}

// Headers returns one label per column, e.g. "Mon(1/13)".
func (w Window) Headers() [DaysInWindow]string {
	var h [DaysInWindow]string
	for i, d := range w {
		h[i] = Header(d)
	}
	return h
}

// Header returns the column label for a single day.
func Header(d dateutil.Date) string {
	return fmt.Sprintf("%s(%d/%d)", d.Weekday().String()[:3], int(d.Month()), d.Day())
}

// String renders the window as "start..end".
func (w Window) String() string {
	return w.Start().String() + ".." + w.End().String()
}
