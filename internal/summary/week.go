// Package summary provides the repository-backed week service shared by the CLI, TUI and HTTP API.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/task"
)

// WeekLayout holds a laid out week and its statistics.
type WeekLayout struct {
	Window calendar.Window
	Layout calendar.Layout
	Stats  WeekStats
}

// WeekStats holds aggregated statistics for the week.
type WeekStats struct {
	Tasks      int
	Rows       int
	Spanning   int                           // tasks that extend beyond the window
	TaskDays   int                           // sum of visible days over all tasks
	DayCounts  [calendar.DaysInWindow]int    // tasks covering each column
	DayHeaders [calendar.DaysInWindow]string // column labels
}

// BusiestDay returns the column index with the most tasks and its count.
// It returns -1 when the week is empty. Ties go to the earliest column.
func (s WeekStats) BusiestDay() (index int, count int) {
	index = -1
	for i, c := range s.DayCounts {
		if c > count {
			index = i
			count = c
		}
	}
	return index, count
}

// FreeDays returns the number of columns with no task.
func (s WeekStats) FreeDays() int {
	n := 0
	for _, c := range s.DayCounts {
		if c == 0 {
			n++
		}
	}
	return n
}

// String renders the counters on one line, e.g.
// "3 tasks · 2 rows · 4 free · busiest Tue(3/11) (2)".
func (s WeekStats) String() string {
	parts := []string{
		plural(s.Tasks, "task"),
		plural(s.Rows, "row"),
		fmt.Sprintf("%d free", s.FreeDays()),
	}
	if day, count := s.BusiestDay(); day >= 0 {
		parts = append(parts, fmt.Sprintf("busiest %s (%d)", s.DayHeaders[day], count))
	}
	return strings.Join(parts, " · ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Options configures BuildWeek.
type Options struct {
	Date     *dateutil.Date // any day in the week; nil means today
	FirstDay time.Weekday
}

// SummarizeWeek lays out tasks on the window and computes statistics.
func SummarizeWeek(w calendar.Window, tasks []*task.Task) *WeekLayout {
	layout := calendar.LayoutWeek(tasks, w)
	return &WeekLayout{
		Window: w,
		Layout: layout,
		Stats:  statsFor(layout),
	}
}

// BuildWeek loads the tasks overlapping the requested week and lays them out.
func BuildWeek(ctx context.Context, repo task.Repository, opts Options) (*WeekLayout, error) {
	day := dateutil.Today()
	if opts.Date != nil {
		day = *opts.Date
	}
	return BuildWindow(ctx, repo, calendar.WeekOf(day, opts.FirstDay))
}

// BuildWindow loads the tasks overlapping w and lays them out.
func BuildWindow(ctx context.Context, repo task.Repository, w calendar.Window) (*WeekLayout, error) {
	tasks, err := repo.ListTasksOverlapping(ctx, w.Start(), w.End())
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return SummarizeWeek(w, tasks), nil
}

func statsFor(l calendar.Layout) WeekStats {
	stats := WeekStats{
		Tasks:      len(l.Placed),
		Rows:       l.Rows,
		DayHeaders: l.Window.Headers(),
	}
	for _, p := range l.Placed {
		stats.TaskDays += p.Column.Span
		if p.Task.Start.Before(l.Window.Start()) || p.Task.End.After(l.Window.End()) {
			stats.Spanning++
		}
		for col := p.Column.Start; col <= p.Column.End(); col++ {
			stats.DayCounts[col-1]++
		}
	}
	return stats
}
