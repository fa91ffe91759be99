package calendar

import (
	"fmt"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/task"
)

// Column is a 1-based grid placement: the first column and how many columns it covers.
type Column struct {
	Start int `json:"start" yaml:"start"`
	Span  int `json:"span" yaml:"span"`
}

// End returns the last column covered, inclusive.
func (c Column) End() int {
	return c.Start + c.Span - 1
}

// Covers reports whether the placement includes the 1-based column col.
func (c Column) Covers(col int) bool {
	return col >= c.Start && col <= c.End()
}

// String renders the placement as a CSS grid-column value, e.g. "2 / span 3".
func (c Column) String() string {
	return fmt.Sprintf("%d / span %d", c.Start, c.Span)
}

// MapToGrid clamps a task to the window and returns its column placement.
//
// The start column is always within [1, 7] and the span is at least 1, even
// for a task that does not intersect the window.
func MapToGrid(t *task.Task, windowStart, windowEnd dateutil.Date) Column {
	visibleStart := dateutil.Max(t.Start, windowStart)
	visibleEnd := dateutil.Min(t.End, windowEnd)

	return Column{
		Start: clamp(visibleStart.Sub(windowStart)+1, 1, DaysInWindow),
		Span:  max(1, visibleEnd.Sub(visibleStart)+1),
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
