package export

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekview/internal/task"
)

// ErrEmptyImport is returned when an import file holds no tasks.
var ErrEmptyImport = errors.New("no tasks to import")

// ImportEntry is one task in an import file.
type ImportEntry struct {
	Title   string `yaml:"title"`
	Project int64  `yaml:"project"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
}

// ImportYAML reads a YAML list of tasks and validates each one.
// An empty end defaults to the start date.
func ImportYAML(r io.Reader) ([]*task.Task, error) {
	var entries []ImportEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyImport
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyImport
	}

	tasks := make([]*task.Task, 0, len(entries))
	for i, e := range entries {
		if e.Start == "" {
			return nil, fmt.Errorf("entry %d (%q): start date is required", i+1, e.Title)
		}
		t, err := task.New(e.Title, e.Project, e.Start, e.End)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, e.Title, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
