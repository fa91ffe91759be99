// Package task defines the core domain types for weekview.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/weekview/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEndBeforeStart = errors.New("end date must be on or after start date")
	ErrInvalidProject = errors.New("project id must not be negative")
	ErrTitleTooLong   = errors.New("title cannot exceed 256 characters")
)

const maxTitleLength = 256

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Task is a piece of work spanning an inclusive range of whole days.
type Task struct {
	ID        int64
	Title     string
	ProjectID int64 // opaque, passed through to renderers
	Start     dateutil.Date
	End       dateutil.Date // inclusive
	CreatedAt time.Time
}

// New creates a new Task with validation.
// start and end accept YYYY-MM-DD; an empty start defaults to today and an
// empty end defaults to start.
func New(title string, projectID int64, start, end string) (*Task, error) {
	r, err := dateutil.NewDateRange(start, end)
	if err != nil {
		if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
			return nil, ErrEndBeforeStart
		}
		return nil, err
	}
	return NewWithDates(title, projectID, r.Start, r.End)
}

// NewWithDates creates a new Task from already parsed dates.
func NewWithDates(title string, projectID int64, start, end dateutil.Date) (*Task, error) {
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if projectID < 0 {
		return nil, ErrInvalidProject
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}

	return &Task{
		Title:     title,
		ProjectID: projectID,
		Start:     start,
		End:       end,
		CreatedAt: time.Now(),
	}, nil
}

// ValidateTitle checks a task title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len([]rune(title)) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// StartYear returns the year the task starts.
func (t *Task) StartYear() int { return t.Start.Year() }

// StartMonth returns the 1-based month the task starts.
func (t *Task) StartMonth() int { return int(t.Start.Month()) }

// StartDay returns the day of month the task starts.
func (t *Task) StartDay() int { return t.Start.Day() }

// EndYear returns the year the task ends.
func (t *Task) EndYear() int { return t.End.Year() }

// EndMonth returns the 1-based month the task ends.
func (t *Task) EndMonth() int { return int(t.End.Month()) }

// EndDay returns the day of month the task ends.
func (t *Task) EndDay() int { return t.End.Day() }

// Days returns the length of the task in days, counting both ends.
func (t *Task) Days() int {
	return t.End.Sub(t.Start) + 1
}

// Covers reports whether the task is active on the given day.
func (t *Task) Covers(day dateutil.Date) bool {
	return !day.Before(t.Start) && !day.After(t.End)
}

// Overlaps reports whether two tasks share at least one day.
func (t *Task) Overlaps(other *Task) bool {
	if other == nil {
		return false
	}
	return !t.End.Before(other.Start) && !other.End.Before(t.Start)
}

// WithDates returns a copy of the task moved to the given dates.
func (t *Task) WithDates(start, end dateutil.Date) (*Task, error) {
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	moved := *t
	moved.Start = start
	moved.End = end
	return &moved, nil
}

// String renders a one-line description of the task.
func (t *Task) String() string {
	if t.Start == t.End {
		return fmt.Sprintf("#%d %s (%s)", t.ID, t.Title, t.Start)
	}
	return fmt.Sprintf("#%d %s (%s..%s)", t.ID, t.Title, t.Start, t.End)
}
