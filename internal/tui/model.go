// Package tui provides the interactive week board.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/logging"
	"github.com/javiermolinar/weekview/internal/summary"
	"github.com/javiermolinar/weekview/internal/task"
	"github.com/javiermolinar/weekview/internal/tui/commands"
	"github.com/javiermolinar/weekview/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModePrompt       // Typing a command in the footer prompt
	ModeConfirm      // Confirming a delete
	ModeHelp         // Full help panel open
)

func (m Mode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "normal"
	}
}

const statusTimeout = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   task.Repository
	config *config.Config
	log    *slog.Logger
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model

	// State
	window   calendar.Window     // week being shown
	weeks    *summary.WeekWindow // cached prev/current/next layouts
	selected int64               // selected task ID, 0 for none
	mode     Mode
	loading  bool

	pendingDelete *task.Task

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error

	watcher *Watcher
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) ModelOption {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithWatcher reloads the board whenever w reports a change.
func WithWatcher(w *Watcher) ModelOption {
	return func(m *Model) {
		m.watcher = w
	}
}

// New creates a new TUI model showing the current week.
func New(repo task.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "/goto friday"
	ti.CharLimit = 256
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.DetailStyle
	ti.PlaceholderStyle = styles.HelpStyle

	h := help.New()
	h.Styles.ShortKey = styles.StatusStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullKey = styles.StatusStyle
	h.Styles.FullDesc = styles.DetailStyle
	h.Styles.FullSeparator = styles.HelpStyle

	m := &Model{
		repo:   repo,
		config: cfg,
		log:    logging.Nop(),
		now:    time.Now,
		theme:  t,
		styles: styles,
		keys:   defaultKeyMap(),
		help:   h,
		prompt: ti,
		mode:   ModeNormal,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.window = calendar.WeekOf(m.today(), cfg.FirstWeekday())
	m.loading = true
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.LoadInitialWeeks(m.repo, m.window)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

func (m Model) today() dateutil.Date {
	return dateutil.FromTime(m.now())
}

// currentWeek returns the layout of the shown week, or nil while it loads.
func (m Model) currentWeek() *summary.WeekLayout {
	if m.weeks == nil {
		return nil
	}
	week := m.weeks.Current()
	if week == nil || week.Window != m.window {
		return nil
	}
	return week
}

// selectedTask returns the selected task if it is placed in the shown week.
func (m Model) selectedTask() *task.Task {
	week := m.currentWeek()
	if week == nil || m.selected == 0 {
		return nil
	}
	p, ok := week.Layout.Find(m.selected)
	if !ok {
		return nil
	}
	return p.Task
}

// ensureSelection keeps the selection on a task placed in the shown week,
// falling back to the first one.
func (m *Model) ensureSelection() {
	week := m.currentWeek()
	if week == nil || week.Layout.Empty() {
		m.selected = 0
		return
	}
	if _, ok := week.Layout.Find(m.selected); ok {
		return
	}
	m.selected = week.Layout.Placed[0].Task.ID
}

// moveSelection steps through placed tasks in lane order, wrapping around.
func (m *Model) moveSelection(delta int) {
	week := m.currentWeek()
	if week == nil || week.Layout.Empty() {
		return
	}
	placed := week.Layout.Placed
	idx := 0
	for i, p := range placed {
		if p.Task.ID == m.selected {
			idx = (i + delta + len(placed)) % len(placed)
			break
		}
	}
	m.selected = placed[idx].Task.ID
}

// shiftWeek moves one week forward or backward, reusing the cached
// neighbour when there is one.
func (m Model) shiftWeek(forward bool) (tea.Model, tea.Cmd) {
	if forward {
		m.window = m.window.Next()
		if m.weeks != nil && m.weeks.HasNext() {
			m.weeks.ShiftForward(nil)
			m.ensureSelection()
			return m, commands.LoadNextWeek(m.repo, m.window)
		}
	} else {
		m.window = m.window.Prev()
		if m.weeks != nil && m.weeks.HasPrevious() {
			m.weeks.ShiftBackward(nil)
			m.ensureSelection()
			return m, commands.LoadPrevWeek(m.repo, m.window)
		}
	}
	m.loading = true
	return m, commands.LoadInitialWeeks(m.repo, m.window)
}

// jumpTo shows the week containing d.
func (m Model) jumpTo(d dateutil.Date) (tea.Model, tea.Cmd) {
	w := calendar.WeekOf(d, m.config.FirstWeekday())
	switch w {
	case m.window:
		return m, nil
	case m.window.Next():
		return m.shiftWeek(true)
	case m.window.Prev():
		return m.shiftWeek(false)
	}
	m.window = w
	m.loading = true
	return m, commands.LoadInitialWeeks(m.repo, m.window)
}

// reload drops the cached neighbours and reloads all three weeks.
// Tasks may span week boundaries, so a change can touch any of them.
func (m Model) reload() tea.Cmd {
	if m.weeks != nil {
		m.weeks.Invalidate()
	}
	return tea.Batch(
		commands.LoadWeek(m.repo, m.window),
		commands.LoadPrevWeek(m.repo, m.window),
		commands.LoadNextWeek(m.repo, m.window),
	)
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusTime = m.now().Add(statusTimeout)
	return m, commands.ClearStatusAfter(statusTimeout)
}

// Run starts the TUI.
func Run(repo task.Repository, cfg *config.Config, log *slog.Logger) error {
	if log == nil {
		log = logging.Nop()
	}
	opts := []ModelOption{WithLogger(log)}

	w, err := NewWatcher(cfg.Storage.DBPath, log)
	if err != nil {
		log.Warn("database watcher disabled", "error", err)
	} else {
		defer w.Close()
		opts = append(opts, WithWatcher(w))
	}

	model := New(repo, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
