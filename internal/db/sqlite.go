// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/logging"
	"github.com/javiermolinar/weekview/internal/task"
)

const taskColumns = `id, title, project_id, start_date, end_date, created_at`

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

// Option configures the repository.
type Option func(*SQLite)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *SQLite) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.log.Debug("database opened", "path", path)
	return s, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTask(ctx context.Context, ex execer, t *task.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO tasks (title, project_id, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := ex.ExecContext(ctx, query,
		t.Title,
		t.ProjectID,
		t.Start.String(),
		t.End.String(),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task %q: %w", t.Title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	t.ID = id
	return nil
}

// CreateTask adds a new task to the repository.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := validate(t); err != nil {
		return err
	}
	if err := insertTask(ctx, s.db, t); err != nil {
		return err
	}
	s.log.Debug("task created", "id", t.ID, "start", t.Start.String(), "end", t.End.String())
	return nil
}

// CreateTasks adds multiple tasks in a batch using a transaction.
// Either every task is stored or none is.
func (s *SQLite) CreateTasks(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	for _, t := range tasks {
		if err := validate(t); err != nil {
			return fmt.Errorf("task %q: %w", t.Title, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tasks {
		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Debug("tasks created", "count", len(tasks))
	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if err := requireRow(result, id); err != nil {
		return err
	}
	s.log.Debug("task deleted", "id", id)
	return nil
}

// UpdateTaskDates moves a task to a new inclusive date range.
func (s *SQLite) UpdateTaskDates(ctx context.Context, id int64, start, end dateutil.Date) error {
	if end.Before(start) {
		return task.ErrEndBeforeStart
	}

	query := `UPDATE tasks SET start_date = ?, end_date = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, start.String(), end.String(), id)
	if err != nil {
		return fmt.Errorf("updating task dates: %w", err)
	}
	if err := requireRow(result, id); err != nil {
		return err
	}
	s.log.Debug("task moved", "id", id, "start", start.String(), "end", end.String())
	return nil
}

// RenameTask updates a task title in place.
func (s *SQLite) RenameTask(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if err := task.ValidateTitle(title); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return fmt.Errorf("renaming task: %w", err)
	}
	return requireRow(result, id)
}

// ListTasksOverlapping returns all tasks sharing at least one day with [start, end].
// The predicate is the same one the week layout uses to filter tasks.
func (s *SQLite) ListTasksOverlapping(ctx context.Context, start, end dateutil.Date) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE end_date >= ? AND start_date <= ?
		ORDER BY start_date, id
	`
	tasks, err := s.queryTasks(ctx, query, start.String(), end.String())
	if err != nil {
		return nil, err
	}
	s.log.Debug("tasks listed", "start", start.String(), "end", end.String(), "count", len(tasks))
	return tasks, nil
}

// ListAllTasks returns every task ordered by ID.
func (s *SQLite) ListAllTasks(ctx context.Context) ([]*task.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t         task.Task
		startDate string
		endDate   string
		createdAt string
	)

	if err := row.Scan(&t.ID, &t.Title, &t.ProjectID, &startDate, &endDate, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	var err error
	if t.Start, err = parseDate(startDate); err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	if t.End, err = parseDate(endDate); err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &t, nil
}

// parseDate parses a date string in the formats SQLite might return.
func parseDate(s string) (dateutil.Date, error) {
	// Date columns can come back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		s = s[:10]
	}
	var d dateutil.Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unrecognized date format: %s", s)
	}
	return d, nil
}

func requireRow(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
	}
	return nil
}

func validate(t *task.Task) error {
	if t == nil {
		return errors.New("task is nil")
	}
	if err := task.ValidateTitle(t.Title); err != nil {
		return err
	}
	if t.End.Before(t.Start) {
		return task.ErrEndBeforeStart
	}
	return nil
}
