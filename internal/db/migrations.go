package db

import "fmt"

// migrate runs database migrations.
// Dates are stored as YYYY-MM-DD text so string comparison matches date order.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			project_id  INTEGER NOT NULL DEFAULT 0,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL CHECK(end_date >= start_date),
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_range ON tasks(start_date, end_date);
		CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
