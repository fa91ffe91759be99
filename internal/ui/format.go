package ui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/task"
)

// now is replaced in tests.
var now = time.Now

// parseDay accepts relative dates ("tomorrow", "friday", "next-week") as well as YYYY-MM-DD.
func parseDay(s string) (dateutil.Date, error) {
	d, err := dateutil.ParseRelativeDate(s, now())
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	return d, nil
}

// parseRange parses optional start and end flags. An empty start means today
// and an empty end means the start date.
func parseRange(start, end string) (dateutil.Date, dateutil.Date, error) {
	s, err := parseDay(start)
	if err != nil {
		return 0, 0, err
	}
	if end == "" {
		return s, s, nil
	}
	e, err := parseDay(end)
	if err != nil {
		return 0, 0, err
	}
	if e.Before(s) {
		return 0, 0, task.ErrEndBeforeStart
	}
	return s, e, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

// printTaskLine writes "#id title  start..end (n days)".
func printTaskLine(w io.Writer, t *task.Task) {
	span := t.Start.String()
	if t.End != t.Start {
		span += ".." + t.End.String()
	}
	days := "1 day"
	if n := t.Days(); n != 1 {
		days = fmt.Sprintf("%d days", n)
	}
	project := ""
	if t.ProjectID != 0 {
		project = " " + projectColor(t.ProjectID).Sprintf("p%d", t.ProjectID)
	}
	fmt.Fprintf(w, "  #%d %s%s  %s\n", t.ID, t.Title, project, formatMuted(span+" ("+days+")"))
}
