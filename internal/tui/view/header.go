package view

import (
	"fmt"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/dateutil"
)

// HeaderLabels returns the column labels of w and the index of today's column,
// or -1 when today is outside the window.
func HeaderLabels(w calendar.Window, today dateutil.Date) ([calendar.DaysInWindow]string, int) {
	return w.Headers(), w.Index(today)
}

// WeekTitle renders the window as "Mar 10 - Mar 16, 2025". The year is
// repeated on the start when the window crosses into a new year.
func WeekTitle(w calendar.Window) string {
	start, end := w.Start().Time(), w.End().Time()
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}
