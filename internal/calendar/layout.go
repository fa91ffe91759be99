package calendar

import (
	"github.com/javiermolinar/weekview/internal/task"
)

// PlacedTask is a task with its lane and column placement in a window.
type PlacedTask struct {
	Task   *task.Task
	Row    int // zero-based lane
	Column Column
}

// Layout is the result of laying out tasks on a week window.
type Layout struct {
	Window Window
	Placed []PlacedTask // row 0 first, each row in start order
	Rows   int
}

// LayoutWeek filters tasks to the window, packs them into rows and maps each to
// its grid column. It is the entry point renderers call.
func LayoutWeek(tasks []*task.Task, w Window) Layout {
	start, end := w.Start(), w.End()
	rows := Pack(Filter(tasks, start, end))

	l := Layout{Window: w, Rows: len(rows)}
	for rowIdx, row := range rows {
		for _, t := range row {
			l.Placed = append(l.Placed, PlacedTask{
				Task:   t,
				Row:    rowIdx,
				Column: MapToGrid(t, start, end),
			})
		}
	}
	return l
}

// Empty reports whether no task was placed.
func (l Layout) Empty() bool {
	return len(l.Placed) == 0
}

// Row returns the placed tasks in lane i, in column order.
func (l Layout) Row(i int) []PlacedTask {
	var out []PlacedTask
	for _, p := range l.Placed {
		if p.Row == i {
			out = append(out, p)
		}
	}
	return out
}

// ByDay returns the placed tasks covering the zero-based column index.
func (l Layout) ByDay(index int) []PlacedTask {
	var out []PlacedTask
	for _, p := range l.Placed {
		if p.Column.Covers(index + 1) {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the placement of the task with the given ID.
func (l Layout) Find(id int64) (PlacedTask, bool) {
	for _, p := range l.Placed {
		if p.Task.ID == id {
			return p, true
		}
	}
	return PlacedTask{}, false
}

// Cells returns one slice per row with the task occupying each column, or nil.
func (l Layout) Cells() [][DaysInWindow]*PlacedTask {
	cells := make([][DaysInWindow]*PlacedTask, l.Rows)
	for i := range l.Placed {
		p := &l.Placed[i]
		for col := p.Column.Start; col <= p.Column.End() && col <= DaysInWindow; col++ {
			cells[p.Row][col-1] = p
		}
	}
	return cells
}
