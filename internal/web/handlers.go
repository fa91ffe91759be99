package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/export"
	"github.com/javiermolinar/weekview/internal/summary"
	"github.com/javiermolinar/weekview/internal/task"
)

// taskRequest is the body of POST and PUT /api/tasks.
// On PUT title, start and end are optional and omitted fields keep their
// value. The project is fixed at creation; sending project_id on PUT is a 400.
type taskRequest struct {
	Title     *string `json:"title"`
	ProjectID *int64  `json:"project_id"`
	Start     *string `json:"start"`
	End       *string `json:"end"`
}

type taskResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ProjectID int64  `json:"project_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Days      int    `json:"days"`
}

func toResponse(t *task.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		Title:     t.Title,
		ProjectID: t.ProjectID,
		Start:     t.Start.String(),
		End:       t.End.String(),
		Days:      t.Days(),
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleWeek(c *gin.Context) {
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    export.Document(week.Layout),
	})
}

func (s *Server) handleWeekICS(c *gin.Context) {
	week, ok := s.loadWeek(c)
	if !ok {
		return
	}
	tasks := make([]*task.Task, 0, len(week.Layout.Placed))
	for _, p := range week.Layout.Placed {
		tasks = append(tasks, p.Task)
	}
	c.Header("Content-Disposition", `attachment; filename="week-`+week.Window.Start().String()+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(export.ICS(tasks, s.now())))
}

func (s *Server) loadWeek(c *gin.Context) (*summary.WeekLayout, bool) {
	day, err := s.dayParam(c.Query("date"))
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	week, err := summary.BuildWeek(c.Request.Context(), s.repo, summary.Options{
		Date:     &day,
		FirstDay: s.firstDay,
	})
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return week, true
}

func (s *Server) handleListTasks(c *gin.Context) {
	start, err := s.dayParam(c.Query("start"))
	if err != nil {
		s.fail(c, err)
		return
	}
	end := start
	if v := c.Query("end"); v != "" {
		if end, err = s.dayParam(v); err != nil {
			s.fail(c, err)
			return
		}
	}
	if end.Before(start) {
		s.fail(c, task.ErrEndBeforeStart)
		return
	}

	tasks, err := s.repo.ListTasksOverlapping(c.Request.Context(), start, end)
	if err != nil {
		s.fail(c, err)
		return
	}

	data := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, toResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	t, err := s.repo.GetTask(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toResponse(t),
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	if req.Title == nil || req.Start == nil {
		s.badRequest(c, "title and start are required")
		return
	}
	end := ""
	if req.End != nil {
		end = *req.End
	}

	var projectID int64
	if req.ProjectID != nil {
		projectID = *req.ProjectID
	}

	t, err := task.New(*req.Title, projectID, *req.Start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.repo.CreateTask(c.Request.Context(), t); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    toResponse(t),
	})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	if req.ProjectID != nil {
		s.badRequest(c, "project_id cannot be changed")
		return
	}

	ctx := c.Request.Context()
	current, err := s.repo.GetTask(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}

	// Validate the whole request before writing so a rejected update
	// leaves the task untouched.
	moved := current
	if req.Start != nil || req.End != nil {
		start, end := current.Start, current.End
		if req.Start != nil {
			if start, err = dateutil.ParseDate(*req.Start); err != nil {
				s.fail(c, err)
				return
			}
		}
		if req.End != nil {
			if end, err = dateutil.ParseDate(*req.End); err != nil {
				s.fail(c, err)
				return
			}
		}
		if moved, err = current.WithDates(start, end); err != nil {
			s.fail(c, err)
			return
		}
	}
	var title string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if err := task.ValidateTitle(title); err != nil {
			s.fail(c, err)
			return
		}
	}

	if moved != current {
		if err := s.repo.UpdateTaskDates(ctx, id, moved.Start, moved.End); err != nil {
			s.fail(c, err)
			return
		}
	}
	if req.Title != nil {
		if err := s.repo.RenameTask(ctx, id, title); err != nil {
			s.fail(c, err)
			return
		}
	}

	updated, err := s.repo.GetTask(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toResponse(updated),
	})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.repo.DeleteTask(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted",
	})
}

// dayParam parses a YYYY-MM-DD query value; empty means today.
func (s *Server) dayParam(v string) (dateutil.Date, error) {
	if v == "" {
		return dateutil.FromTime(s.now()), nil
	}
	return dateutil.ParseDate(v)
}

func (s *Server) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.badRequest(c, "invalid task id")
		return 0, false
	}
	return id, true
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

// fail maps domain errors to status codes: missing tasks are 404, validation
// failures 400 and everything else 500.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrTitleTooLong),
		errors.Is(err, task.ErrEndBeforeStart),
		errors.Is(err, task.ErrInvalidProject),
		errors.Is(err, dateutil.ErrInvalidDateFormat),
		errors.Is(err, dateutil.ErrEndDateBeforeStart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
