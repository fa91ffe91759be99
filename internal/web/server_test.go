package web

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/weekview/internal/db"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/export"
	"github.com/javiermolinar/weekview/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Wednesday 2025-03-12.
var fixedNow = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

func newTestServer(t *testing.T) (*Server, *db.SQLite) {
	t.Helper()

	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return New(repo, WithClock(func() time.Time { return fixedNow })), repo
}

func seed(t *testing.T, repo task.Repository, title, start, end string) *task.Task {
	t.Helper()
	tsk, err := task.New(title, 0, start, end)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTask(context.Background(), tsk))
	return tsk
}

func do(t *testing.T, s *Server, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestWeek(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "A", "2025-03-08", "2025-03-12")
	seed(t, repo, "B", "2025-03-15", "2025-03-20")
	seed(t, repo, "Elsewhere", "2025-04-01", "2025-04-02")

	w, env := do(t, s, http.MethodGet, "/api/week?date=2025-03-14", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var doc export.LayoutDocument
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "2025-03-10", doc.Start)
	assert.Equal(t, 1, doc.Rows)
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, "1 / span 3", doc.Tasks[0].GridColumn)
	assert.Equal(t, "6 / span 2", doc.Tasks[1].GridColumn)
}

func TestWeek_DefaultsToToday(t *testing.T) {
	s, _ := newTestServer(t)

	_, env := do(t, s, http.MethodGet, "/api/week", nil)
	var doc export.LayoutDocument
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "2025-03-10", doc.Start)
	assert.Equal(t, 0, doc.Rows)
}

func TestWeek_FirstDay(t *testing.T) {
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	s := New(repo, WithFirstDay(time.Sunday))

	_, env := do(t, s, http.MethodGet, "/api/week?date=2025-03-12", nil)
	var doc export.LayoutDocument
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "2025-03-09", doc.Start)
}

func TestWeek_BadDate(t *testing.T) {
	s, _ := newTestServer(t)

	w, env := do(t, s, http.MethodGet, "/api/week?date=03/12/2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestWeekICS(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "A", "2025-03-10", "2025-03-11")

	w, _ := do(t, s, http.MethodGet, "/api/week.ics?date=2025-03-12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "week-2025-03-10.ics")
	assert.Contains(t, w.Body.String(), "UID:task-1@weekview")
	assert.Contains(t, w.Body.String(), "DTSTAMP:20250312T090000Z")
}

func TestCreateAndGetTask(t *testing.T) {
	s, _ := newTestServer(t)

	w, env := do(t, s, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "Offsite",
		"project_id": 4,
		"start":      "2025-03-12",
		"end":        "2025-03-13",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created taskResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 2, created.Days)
	assert.Equal(t, int64(4), created.ProjectID)

	w, env = do(t, s, http.MethodGet, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got taskResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created, got)
}

func TestCreateTask_Validation(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing title", map[string]any{"start": "2025-03-12"}},
		{"missing start", map[string]any{"title": "x"}},
		{"empty title", map[string]any{"title": "", "start": "2025-03-12"}},
		{"end before start", map[string]any{"title": "x", "start": "2025-03-12", "end": "2025-03-11"}},
		{"bad date", map[string]any{"title": "x", "start": "tomorrow-ish"}},
		{"negative project", map[string]any{"title": "x", "start": "2025-03-12", "project_id": -1}},
		{"not json", "just a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, s, http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestListTasks(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "Today", "2025-03-12", "2025-03-12")
	seed(t, repo, "Later", "2025-03-20", "2025-03-21")

	_, env := do(t, s, http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, 1, env.Count)

	_, env = do(t, s, http.MethodGet, "/api/tasks?start=2025-03-01&end=2025-03-31", nil)
	assert.Equal(t, 2, env.Count)

	w, _ := do(t, s, http.MethodGet, "/api/tasks?start=2025-03-31&end=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "Trip", "2025-03-10", "2025-03-12")

	w, env := do(t, s, http.MethodPut, "/api/tasks/1", map[string]any{
		"title": "Longer trip",
		"end":   "2025-03-14",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got taskResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Longer trip", got.Title)
	assert.Equal(t, "2025-03-10", got.Start)
	assert.Equal(t, "2025-03-14", got.End)

	w, _ = do(t, s, http.MethodPut, "/api/tasks/1", map[string]any{"start": "2025-03-20"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, s, http.MethodPut, "/api/tasks/99", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTask_InvalidTitleLeavesTaskUntouched(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "Sprint", "2025-03-10", "2025-03-12")

	w, env := do(t, s, http.MethodPut, "/api/tasks/1", map[string]any{
		"start": "2025-03-20",
		"end":   "2025-03-21",
		"title": "   ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, task.ErrEmptyTitle.Error(), env.Error)

	stored, err := repo.GetTask(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", stored.Start.String())
	assert.Equal(t, "2025-03-12", stored.End.String())
	assert.Equal(t, "Sprint", stored.Title)
}

func TestUpdateTask_ProjectIsFixed(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "Sprint", "2025-03-10", "2025-03-12")

	w, env := do(t, s, http.MethodPut, "/api/tasks/1", map[string]any{
		"project_id": 3,
		"end":        "2025-03-14",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "project_id")

	stored, err := repo.GetTask(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", stored.End.String())
	assert.Equal(t, int64(0), stored.ProjectID)
}

func TestDeleteTask(t *testing.T) {
	s, repo := newTestServer(t)
	seed(t, repo, "Gone", "2025-03-10", "2025-03-10")

	w, env := do(t, s, http.MethodDelete, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = do(t, s, http.MethodDelete, "/api/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, s, http.MethodDelete, "/api/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type failingRepo struct {
	task.Repository
}

func (failingRepo) ListTasksOverlapping(context.Context, dateutil.Date, dateutil.Date) ([]*task.Task, error) {
	return nil, errors.New("disk on fire")
}

func TestInternalError(t *testing.T) {
	s := New(failingRepo{})

	w, env := do(t, s, http.MethodGet, "/api/week?date=2025-03-12", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, env.Error, "disk on fire")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(errors.Join(errors.New("x"), task.ErrTaskNotFound)))
	assert.Equal(t, http.StatusBadRequest, statusFor(dateutil.ErrInvalidDateFormat))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
