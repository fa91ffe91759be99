package task

import (
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/weekview/internal/dateutil"
)

func TestNew(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task, err := New("  Ship release  ", 7, "2025-01-15", "2025-01-17")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Title != "Ship release" {
			t.Errorf("got title %q, want %q", task.Title, "Ship release")
		}
		if task.ProjectID != 7 {
			t.Errorf("got project %d, want 7", task.ProjectID)
		}
		if task.Start.String() != "2025-01-15" || task.End.String() != "2025-01-17" {
			t.Errorf("got %v..%v, want 2025-01-15..2025-01-17", task.Start, task.End)
		}
		if task.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		task, err := New("One day", 0, "2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Start != task.End {
			t.Errorf("expected single-day task, got %v..%v", task.Start, task.End)
		}
	})

	t.Run("empty start defaults to today", func(t *testing.T) {
		task, err := New("Today", 0, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Start != dateutil.Today() {
			t.Errorf("got %v, want %v", task.Start, dateutil.Today())
		}
	})
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		project int64
		start   string
		end     string
		wantErr error
	}{
		{
			name:    "empty title",
			title:   "   ",
			start:   "2025-01-15",
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "title too long",
			title:   strings.Repeat("x", 257),
			start:   "2025-01-15",
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "negative project",
			title:   "Test",
			project: -1,
			start:   "2025-01-15",
			wantErr: ErrInvalidProject,
		},
		{
			name:    "end before start",
			title:   "Test",
			start:   "2025-01-15",
			end:     "2025-01-14",
			wantErr: ErrEndBeforeStart,
		},
		{
			name:    "invalid start",
			title:   "Test",
			start:   "15/01/2025",
			wantErr: dateutil.ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, tt.project, tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func newTask(t *testing.T, id int64, start, end string) *Task {
	t.Helper()
	return &Task{
		ID:    id,
		Title: "task",
		Start: dateutil.MustParse(start),
		End:   dateutil.MustParse(end),
	}
}

func TestTask_Components(t *testing.T) {
	task := newTask(t, 1, "2024-12-30", "2025-01-02")
	if task.StartYear() != 2024 || task.StartMonth() != 12 || task.StartDay() != 30 {
		t.Errorf("start components: got %d-%d-%d", task.StartYear(), task.StartMonth(), task.StartDay())
	}
	if task.EndYear() != 2025 || task.EndMonth() != 1 || task.EndDay() != 2 {
		t.Errorf("end components: got %d-%d-%d", task.EndYear(), task.EndMonth(), task.EndDay())
	}
	if task.Days() != 4 {
		t.Errorf("Days: got %d, want 4", task.Days())
	}
}

func TestTask_Covers(t *testing.T) {
	task := newTask(t, 1, "2025-01-10", "2025-01-12")

	tests := []struct {
		day  string
		want bool
	}{
		{"2025-01-09", false},
		{"2025-01-10", true},
		{"2025-01-11", true},
		{"2025-01-12", true},
		{"2025-01-13", false},
	}
	for _, tt := range tests {
		if got := task.Covers(dateutil.MustParse(tt.day)); got != tt.want {
			t.Errorf("Covers(%s): got %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestTask_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]string
		want bool
	}{
		{"identical", [2]string{"2025-01-10", "2025-01-12"}, [2]string{"2025-01-10", "2025-01-12"}, true},
		{"touching end to start", [2]string{"2025-01-10", "2025-01-12"}, [2]string{"2025-01-12", "2025-01-14"}, true},
		{"adjacent days", [2]string{"2025-01-10", "2025-01-12"}, [2]string{"2025-01-13", "2025-01-14"}, false},
		{"contained", [2]string{"2025-01-01", "2025-01-31"}, [2]string{"2025-01-10", "2025-01-11"}, true},
		{"across month", [2]string{"2025-01-30", "2025-02-02"}, [2]string{"2025-02-01", "2025-02-01"}, true},
		{"same day of month different month", [2]string{"2025-01-10", "2025-01-12"}, [2]string{"2025-02-11", "2025-02-11"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTask(t, 1, tt.a[0], tt.a[1])
			b := newTask(t, 2, tt.b[0], tt.b[1])
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("a.Overlaps(b): got %v, want %v", got, tt.want)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("b.Overlaps(a): got %v, want %v", got, tt.want)
			}
		})
	}

	if newTask(t, 1, "2025-01-10", "2025-01-10").Overlaps(nil) {
		t.Error("expected no overlap with nil")
	}
}

func TestTask_WithDates(t *testing.T) {
	original := newTask(t, 3, "2025-01-10", "2025-01-12")

	moved, err := original.WithDates(dateutil.MustParse("2025-01-20"), dateutil.MustParse("2025-01-21"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.ID != 3 || moved.Start.String() != "2025-01-20" {
		t.Errorf("got %v", moved)
	}
	if original.Start.String() != "2025-01-10" {
		t.Error("original task was mutated")
	}

	if _, err := original.WithDates(dateutil.MustParse("2025-01-21"), dateutil.MustParse("2025-01-20")); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("got error %v, want %v", err, ErrEndBeforeStart)
	}
}

func TestTask_String(t *testing.T) {
	if got := newTask(t, 4, "2025-01-10", "2025-01-10").String(); got != "#4 task (2025-01-10)" {
		t.Errorf("got %q", got)
	}
	if got := newTask(t, 4, "2025-01-10", "2025-01-11").String(); got != "#4 task (2025-01-10..2025-01-11)" {
		t.Errorf("got %q", got)
	}
}
