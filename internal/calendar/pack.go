package calendar

import (
	"cmp"
	"slices"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/task"
)

// lane is an open row: the tasks placed so far and the end of the last one.
type lane struct {
	lastEnd dateutil.Date
	tasks   []*task.Task
}

// SortByStart returns a copy of tasks ordered by start date, then ID.
func SortByStart(tasks []*task.Task) []*task.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, compareStart)
	return sorted
}

func compareStart(a, b *task.Task) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Pack assigns tasks to the fewest non-overlapping rows.
//
// Tasks are taken in (start, id) order and each goes to the first row whose last
// task ends strictly before it starts; otherwise a new row is opened. Greedy by
// start date is optimal for intervals, so the row count equals MaxConcurrency.
// Empty input yields no rows. The caller's slice keeps its order.
func Pack(tasks []*task.Task) [][]*task.Task {
	var lanes []lane

	for _, t := range SortByStart(tasks) {
		placed := false
		for i := range lanes {
			if lanes[i].lastEnd.Before(t.Start) {
				lanes[i].tasks = append(lanes[i].tasks, t)
				lanes[i].lastEnd = t.End
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, lane{lastEnd: t.End, tasks: []*task.Task{t}})
		}
	}

	rows := make([][]*task.Task, len(lanes))
	for i, l := range lanes {
		rows[i] = l.tasks
	}
	return rows
}

// MaxConcurrency returns the largest number of tasks active on any single day.
func MaxConcurrency(tasks []*task.Task) int {
	// +1 on the first day, -1 on the day after the last.
	deltas := make(map[dateutil.Date]int, len(tasks)*2)
	for _, t := range tasks {
		deltas[t.Start]++
		deltas[t.End.AddDays(1)]--
	}

	days := make([]dateutil.Date, 0, len(deltas))
	for d := range deltas {
		days = append(days, d)
	}
	slices.Sort(days)

	active, peak := 0, 0
	for _, d := range days {
		active += deltas[d]
		peak = max(peak, active)
	}
	return peak
}
