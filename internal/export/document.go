package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekview/internal/calendar"
)

// LayoutDocument is the serializable form of a laid out week.
type LayoutDocument struct {
	Start   string        `json:"start" yaml:"start"`
	End     string        `json:"end" yaml:"end"`
	Headers []string      `json:"headers" yaml:"headers"`
	Rows    int           `json:"rows" yaml:"rows"`
	Tasks   []PlacedEntry `json:"tasks" yaml:"tasks"`
}

// PlacedEntry is one placed task in a LayoutDocument.
type PlacedEntry struct {
	ID         int64  `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	ProjectID  int64  `json:"project_id" yaml:"project_id"`
	Start      string `json:"start" yaml:"start"`
	End        string `json:"end" yaml:"end"`
	Row        int    `json:"row" yaml:"row"`
	Column     int    `json:"column" yaml:"column"`
	Span       int    `json:"span" yaml:"span"`
	GridColumn string `json:"grid_column" yaml:"grid_column"`
}

// Document converts a layout into its serializable form.
func Document(l calendar.Layout) LayoutDocument {
	headers := l.Window.Headers()
	doc := LayoutDocument{
		Start:   l.Window.Start().String(),
		End:     l.Window.End().String(),
		Headers: headers[:],
		Rows:    l.Rows,
		Tasks:   make([]PlacedEntry, 0, len(l.Placed)),
	}
	for _, p := range l.Placed {
		doc.Tasks = append(doc.Tasks, PlacedEntry{
			ID:         p.Task.ID,
			Title:      p.Task.Title,
			ProjectID:  p.Task.ProjectID,
			Start:      p.Task.Start.String(),
			End:        p.Task.End.String(),
			Row:        p.Row,
			Column:     p.Column.Start,
			Span:       p.Column.Span,
			GridColumn: p.Column.String(),
		})
	}
	return doc
}

// JSON writes the layout document as indented JSON.
func JSON(w io.Writer, l calendar.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document(l)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// YAML writes the layout document as YAML.
func YAML(w io.Writer, l calendar.Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document(l)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return nil
}
