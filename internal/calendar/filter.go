package calendar

import (
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/task"
)

// Filter returns the tasks whose inclusive range shares at least one day with
// [windowStart, windowEnd], in input order. The input slice is not modified.
func Filter(tasks []*task.Task, windowStart, windowEnd dateutil.Date) []*task.Task {
	var kept []*task.Task
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if !t.End.Before(windowStart) && !t.Start.After(windowEnd) {
			kept = append(kept, t)
		}
	}
	return kept
}
