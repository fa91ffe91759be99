// Package web serves week layouts and task CRUD over a JSON HTTP API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/weekview/internal/logging"
	"github.com/javiermolinar/weekview/internal/task"
)

const shutdownTimeout = 5 * time.Second

// Server is the weekview HTTP API.
type Server struct {
	repo     task.Repository
	router   *gin.Engine
	log      *slog.Logger
	firstDay time.Weekday
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFirstDay sets the weekday the week window starts on.
func WithFirstDay(d time.Weekday) Option {
	return func(s *Server) { s.firstDay = d }
}

// WithClock overrides the time source used for "today" and ICS timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the API server and registers its routes.
func New(repo task.Repository, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		router:   gin.New(),
		log:      logging.Nop(),
		firstDay: time.Monday,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery(), requestID(), s.requestLogger())

	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/week", s.handleWeek)
		api.GET("/week.ics", s.handleWeekICS)
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
	}

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
