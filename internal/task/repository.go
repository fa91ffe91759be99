package task

import (
	"context"

	"github.com/javiermolinar/weekview/internal/dateutil"
)

// Repository defines the storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task to the repository and sets its ID.
	CreateTask(ctx context.Context, task *Task) error

	// CreateTasks adds multiple tasks in a single transaction.
	CreateTasks(ctx context.Context, tasks []*Task) error

	// GetTask retrieves a task by ID.
	// Returns ErrTaskNotFound if no task has the given ID.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// DeleteTask removes a task.
	// Returns ErrTaskNotFound if no task has the given ID.
	DeleteTask(ctx context.Context, id int64) error

	// UpdateTaskDates moves a task to a new inclusive date range.
	// Returns ErrEndBeforeStart if end is before start.
	UpdateTaskDates(ctx context.Context, id int64, start, end dateutil.Date) error

	// RenameTask updates a task title in place.
	// Returns ErrEmptyTitle if the title is empty.
	RenameTask(ctx context.Context, id int64, title string) error

	// ListTasksOverlapping returns every task whose range shares at least one day
	// with [start, end], ordered by start date then ID.
	ListTasksOverlapping(ctx context.Context, start, end dateutil.Date) ([]*Task, error)

	// ListAllTasks returns every stored task ordered by ID.
	ListAllTasks(ctx context.Context) ([]*Task, error)

	// Close releases any resources held by the repository.
	Close() error
}
