package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/db"
	"github.com/javiermolinar/weekview/internal/export"
	"github.com/javiermolinar/weekview/internal/summary"
	"github.com/javiermolinar/weekview/internal/task"
	"github.com/javiermolinar/weekview/internal/web"
)

// Wednesday; its Monday-first week is 2025-03-10..2025-03-16.
var wednesday = dateutil.MustParse("2025-03-12")

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// createTask is a helper to create and insert a task.
func createTask(t *testing.T, repo *db.SQLite, title, start, end string) *task.Task {
	t.Helper()
	tsk, err := task.New(title, 0, start, end)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if err := repo.CreateTask(context.Background(), tsk); err != nil {
		t.Fatalf("failed to insert task: %v", err)
	}
	return tsk
}

func buildWeek(t *testing.T, repo task.Repository, day dateutil.Date) *summary.WeekLayout {
	t.Helper()
	week, err := summary.BuildWeek(context.Background(), repo, summary.Options{Date: &day, FirstDay: time.Monday})
	if err != nil {
		t.Fatalf("BuildWeek: %v", err)
	}
	return week
}

// seedWeek stores four tasks around the week of 2025-03-10 plus one outside it.
func seedWeek(t *testing.T, repo *db.SQLite) map[string]*task.Task {
	t.Helper()
	return map[string]*task.Task{
		"trip":    createTask(t, repo, "Trip", "2025-03-08", "2025-03-11"),
		"review":  createTask(t, repo, "Review", "2025-03-11", "2025-03-12"),
		"offsite": createTask(t, repo, "Offsite", "2025-03-13", "2025-03-13"),
		"launch":  createTask(t, repo, "Launch", "2025-03-14", "2025-03-20"),
		"later":   createTask(t, repo, "Later", "2025-03-24", "2025-03-25"),
	}
}

func TestWeekLayoutFromDatabase(t *testing.T) {
	repo := openRepo(t)
	tasks := seedWeek(t, repo)

	week := buildWeek(t, repo, wednesday)

	if week.Layout.Rows != 2 {
		t.Fatalf("Rows: got %d, want 2", week.Layout.Rows)
	}
	if len(week.Layout.Placed) != 4 {
		t.Fatalf("Placed: got %d, want 4", len(week.Layout.Placed))
	}

	want := map[string]struct{ row, start, span int }{
		"trip":    {0, 1, 2},
		"review":  {1, 2, 2},
		"offsite": {0, 4, 1},
		"launch":  {0, 5, 3},
	}
	for name, w := range want {
		p, ok := week.Layout.Find(tasks[name].ID)
		if !ok {
			t.Errorf("%s not placed", name)
			continue
		}
		if p.Row != w.row || p.Column.Start != w.start || p.Column.Span != w.span {
			t.Errorf("%s: row %d col %d span %d, want row %d col %d span %d",
				name, p.Row, p.Column.Start, p.Column.Span, w.row, w.start, w.span)
		}
	}
	if _, ok := week.Layout.Find(tasks["later"].ID); ok {
		t.Error("task outside the week was placed")
	}

	if week.Stats.Spanning != 2 {
		t.Errorf("Spanning: got %d, want 2", week.Stats.Spanning)
	}
	if got := week.Stats.String(); got != "4 tasks · 2 rows · 0 free · busiest Tue(3/11) (2)" {
		t.Errorf("Stats: got %q", got)
	}
}

func TestWeekBoundariesAreInclusive(t *testing.T) {
	repo := openRepo(t)
	createTask(t, repo, "Ends Monday", "2025-03-03", "2025-03-10")
	createTask(t, repo, "Starts Sunday", "2025-03-16", "2025-03-22")
	createTask(t, repo, "Ends Sunday before", "2025-03-09", "2025-03-09")
	createTask(t, repo, "Starts Monday after", "2025-03-17", "2025-03-17")

	week := buildWeek(t, repo, wednesday)

	var titles []string
	for _, p := range week.Layout.Placed {
		titles = append(titles, p.Task.Title)
	}
	if strings.Join(titles, ",") != "Ends Monday,Starts Sunday" {
		t.Errorf("placed %v, want the two tasks touching the week edges", titles)
	}
}

func TestMoveAcrossWeeks(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	tsk := createTask(t, repo, "Sprint", "2025-03-11", "2025-03-13")

	moved, err := tsk.WithDates(dateutil.MustParse("2025-03-18"), dateutil.MustParse("2025-03-20"))
	if err != nil {
		t.Fatalf("WithDates: %v", err)
	}
	if err := repo.UpdateTaskDates(ctx, moved.ID, moved.Start, moved.End); err != nil {
		t.Fatalf("UpdateTaskDates: %v", err)
	}

	if week := buildWeek(t, repo, wednesday); !week.Layout.Empty() {
		t.Errorf("old week still has %d tasks", len(week.Layout.Placed))
	}
	next := buildWeek(t, repo, wednesday.AddDays(7))
	p, ok := next.Layout.Find(tsk.ID)
	if !ok {
		t.Fatal("moved task not in the next week")
	}
	if p.Column.Start != 2 || p.Column.Span != 3 {
		t.Errorf("moved task at col %d span %d, want col 2 span 3", p.Column.Start, p.Column.Span)
	}

	err = repo.UpdateTaskDates(ctx, tsk.ID, dateutil.MustParse("2025-03-20"), dateutil.MustParse("2025-03-18"))
	if !errors.Is(err, task.ErrEndBeforeStart) {
		t.Errorf("backwards move: got %v, want ErrEndBeforeStart", err)
	}
}

func TestDeleteRemovesFromLayout(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	tasks := seedWeek(t, repo)

	if err := repo.DeleteTask(ctx, tasks["trip"].ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := repo.DeleteTask(ctx, tasks["trip"].ID); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("second delete: got %v, want ErrTaskNotFound", err)
	}

	week := buildWeek(t, repo, wednesday)
	if week.Layout.Rows != 1 {
		t.Errorf("Rows after delete: got %d, want 1", week.Layout.Rows)
	}
}

func TestImportThenExport(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	in := `
- title: Planning
  start: 2025-03-10
- title: Conference
  project: 2
  start: 2025-03-12
  end: 2025-03-14
- title: Retro
  start: 2025-03-14
`
	tasks, err := export.ImportYAML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportYAML: %v", err)
	}
	if err := repo.CreateTasks(ctx, tasks); err != nil {
		t.Fatalf("CreateTasks: %v", err)
	}

	week := buildWeek(t, repo, wednesday)

	var buf bytes.Buffer
	if err := export.YAML(&buf, week.Layout); err != nil {
		t.Fatalf("YAML: %v", err)
	}
	var doc export.LayoutDocument
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding export: %v", err)
	}

	if doc.Start != "2025-03-10" || doc.End != "2025-03-16" || doc.Rows != 2 {
		t.Errorf("document header: %s..%s rows %d", doc.Start, doc.End, doc.Rows)
	}
	if len(doc.Tasks) != 3 {
		t.Fatalf("document has %d tasks, want 3", len(doc.Tasks))
	}
	conf := doc.Tasks[1]
	if conf.Title != "Conference" || conf.ProjectID != 2 || conf.Column != 3 || conf.Span != 3 {
		t.Errorf("conference entry: %+v", conf)
	}
	if doc.Tasks[2].Title != "Retro" || doc.Tasks[2].Row != 1 {
		t.Errorf("retro should drop to row 1: %+v", doc.Tasks[2])
	}

	ics := export.ICS(calendar.Filter(tasks, week.Window.Start(), week.Window.End()), time.Now())
	for _, want := range []string{
		"SUMMARY:Conference",
		"DTSTART;VALUE=DATE:20250312",
		"DTEND;VALUE=DATE:20250315",
		"CATEGORIES:project-2",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS missing %q", want)
		}
	}
}

func TestHTTPAPIAgainstSQLite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := openRepo(t)
	now := func() time.Time { return time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC) }
	srv := httptest.NewServer(web.New(repo, web.WithClock(now)).Handler())
	defer srv.Close()

	body := `{"title":"Hackathon","start":"2025-03-13","end":"2025-03-15"}`
	resp, err := http.Post(srv.URL+"/api/tasks", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status: got %d, want 201", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/week")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool                  `json:"success"`
		Data    export.LayoutDocument `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding week: %v", err)
	}
	if !env.Success || env.Data.Start != "2025-03-10" {
		t.Fatalf("week response: %+v", env)
	}
	if len(env.Data.Tasks) != 1 || env.Data.Tasks[0].GridColumn != "4 / span 3" {
		t.Errorf("week tasks: %+v", env.Data.Tasks)
	}

	stored, err := repo.ListAllTasks(context.Background())
	if err != nil || len(stored) != 1 || stored[0].Title != "Hackathon" {
		t.Errorf("repository after POST: %v, %v", stored, err)
	}
}
