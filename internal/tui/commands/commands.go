// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/summary"
	"github.com/javiermolinar/weekview/internal/task"
)

// InitialLoadMsg is sent when all 3 weeks are loaded initially.
type InitialLoadMsg struct {
	Window *summary.WeekWindow
}

// WeekLoadedMsg is sent when the current week is reloaded.
type WeekLoadedMsg struct {
	Week *summary.WeekLayout
}

// WeekShiftedMsg is sent when a new edge week is loaded after navigation.
type WeekShiftedMsg struct {
	Week    *summary.WeekLayout
	Forward bool // true if shifted forward, false if backward
}

// TaskDeletedMsg is sent after a task is removed.
type TaskDeletedMsg struct {
	ID int64
}

// TaskSavedMsg is sent after a task is created, moved or renamed.
type TaskSavedMsg struct {
	Task   *task.Task
	Action string // "Added", "Moved" or "Renamed"
}

// CopiedMsg is sent after the week text is put on the clipboard.
type CopiedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WriteClipboard is replaced in tests.
var WriteClipboard = clipboard.WriteAll

// LoadInitialWeeks loads 3 weeks (prev, current, next) around w.
func LoadInitialWeeks(repo task.Repository, w calendar.Window) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		prev, err := summary.BuildWindow(ctx, repo, w.Prev())
		if err != nil {
			return ErrMsg{Err: err}
		}
		curr, err := summary.BuildWindow(ctx, repo, w)
		if err != nil {
			return ErrMsg{Err: err}
		}
		next, err := summary.BuildWindow(ctx, repo, w.Next())
		if err != nil {
			return ErrMsg{Err: err}
		}

		return InitialLoadMsg{Window: summary.NewWeekWindow(prev, curr, next)}
	}
}

// LoadWeek reloads the current week only (used after mutations).
func LoadWeek(repo task.Repository, w calendar.Window) tea.Cmd {
	return func() tea.Msg {
		week, err := summary.BuildWindow(context.Background(), repo, w)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekLoadedMsg{Week: week}
	}
}

// LoadNextWeek loads the week after w once the window has shifted forward to w.
func LoadNextWeek(repo task.Repository, w calendar.Window) tea.Cmd {
	return func() tea.Msg {
		week, err := summary.BuildWindow(context.Background(), repo, w.Next())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekShiftedMsg{Week: week, Forward: true}
	}
}

// LoadPrevWeek loads the week before w once the window has shifted backward to w.
func LoadPrevWeek(repo task.Repository, w calendar.Window) tea.Cmd {
	return func() tea.Msg {
		week, err := summary.BuildWindow(context.Background(), repo, w.Prev())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekShiftedMsg{Week: week, Forward: false}
	}
}

// DeleteTask removes a task.
func DeleteTask(repo task.Repository, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteTask(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting task: %w", err)}
		}
		return TaskDeletedMsg{ID: id}
	}
}

// CreateTask stores a new task.
func CreateTask(repo task.Repository, t *task.Task) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateTask(context.Background(), t); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating task: %w", err)}
		}
		return TaskSavedMsg{Task: t, Action: "Added"}
	}
}

// MoveTask changes the dates of an existing task.
func MoveTask(repo task.Repository, t *task.Task, start, end dateutil.Date) tea.Cmd {
	return func() tea.Msg {
		moved, err := t.WithDates(start, end)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.UpdateTaskDates(context.Background(), t.ID, moved.Start, moved.End); err != nil {
			return ErrMsg{Err: fmt.Errorf("moving task: %w", err)}
		}
		return TaskSavedMsg{Task: moved, Action: "Moved"}
	}
}

// RenameTask changes the title of an existing task.
func RenameTask(repo task.Repository, t *task.Task, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	return func() tea.Msg {
		if err := task.ValidateTitle(title); err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.RenameTask(context.Background(), t.ID, title); err != nil {
			return ErrMsg{Err: fmt.Errorf("renaming task: %w", err)}
		}
		renamed := *t
		renamed.Title = title
		return TaskSavedMsg{Task: &renamed, Action: "Renamed"}
	}
}

// CopyText puts text on the system clipboard.
func CopyText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := WriteClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
