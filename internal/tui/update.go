package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/summary"
	"github.com/javiermolinar/weekview/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.InitialLoadMsg:
		// Ignore loads for a week the user already navigated away from.
		if msg.Window.Current() == nil || msg.Window.Current().Window != m.window {
			return m, nil
		}
		m.weeks = msg.Window
		m.loading = false
		m.ensureSelection()
		m.log.Debug("weeks loaded", "window", m.window.String(), "tasks", msg.Window.Current().Stats.Tasks)
		return m, nil

	case commands.WeekLoadedMsg:
		// Single week reload (after mutations)
		if msg.Week.Window != m.window {
			return m, nil
		}
		if m.weeks == nil {
			m.weeks = summary.NewWeekWindow(nil, msg.Week, nil)
		} else {
			m.weeks.SetCurrent(msg.Week)
		}
		m.loading = false
		m.ensureSelection()
		return m, nil

	case commands.WeekShiftedMsg:
		// A neighbour of the shown week finished loading.
		if m.weeks == nil {
			return m, nil
		}
		switch {
		case msg.Forward && msg.Week.Window == m.window.Next():
			m.weeks.SetNext(msg.Week)
		case !msg.Forward && msg.Week.Window == m.window.Prev():
			m.weeks.SetPrevious(msg.Week)
		}
		return m, nil

	case commands.TaskSavedMsg:
		m.selected = msg.Task.ID
		m.log.Info("task saved", "action", msg.Action, "id", msg.Task.ID)
		m.statusMsg = fmt.Sprintf("%s: %s", msg.Action, msg.Task.Title)
		m.statusTime = m.now().Add(statusTimeout)
		if msg.Task.End.Before(m.window.Start()) || msg.Task.Start.After(m.window.End()) {
			// Follow the task to its week. The cached neighbours are stale.
			if m.weeks != nil {
				m.weeks.Invalidate()
			}
			model, cmd := m.jumpTo(msg.Task.Start)
			return model, tea.Batch(cmd, commands.ClearStatusAfter(statusTimeout))
		}
		return m, tea.Batch(m.reload(), commands.ClearStatusAfter(statusTimeout))

	case commands.TaskDeletedMsg:
		m.log.Info("task deleted", "id", msg.ID)
		m.statusMsg = fmt.Sprintf("Deleted task #%d", msg.ID)
		m.statusTime = m.now().Add(statusTimeout)
		return m, tea.Batch(m.reload(), commands.ClearStatusAfter(statusTimeout))

	case commands.CopiedMsg:
		m.statusMsg = "Copied week to clipboard"
		m.statusTime = m.now().Add(statusTimeout)
		return m, commands.ClearStatusAfter(statusTimeout)

	case DBChangedMsg:
		m.log.Debug("database changed on disk")
		var cmds []tea.Cmd
		cmds = append(cmds, m.reload())
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.Wait())
		}
		return m, tea.Batch(cmds...)

	case commands.ErrMsg:
		m.log.Error("board error", "error", msg.Err)
		m.loading = false
		return m.fail(msg.Err)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusTimeout)
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	// Keep the cursor blinking while the prompt is open.
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}
