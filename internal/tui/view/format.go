package view

import (
	"fmt"

	"github.com/javiermolinar/weekview/internal/task"
)

// FormatDays formats a day count as "1 day" or "N days".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatTask renders the selected-task detail line.
func FormatTask(t *task.Task) string {
	span := t.Start.String()
	if t.End != t.Start {
		span += ".." + t.End.String()
	}
	line := fmt.Sprintf("#%d %s  %s · %s", t.ID, t.Title, span, FormatDays(t.Days()))
	if t.ProjectID != 0 {
		line += fmt.Sprintf(" · project %d", t.ProjectID)
	}
	return line
}
