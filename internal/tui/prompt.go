package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/task"
	"github.com/javiermolinar/weekview/internal/tui/commands"
	"github.com/javiermolinar/weekview/internal/tui/input"
)

var promptCommands = []input.PromptCommand{
	{
		Name:        "/goto",
		Usage:       "/goto <date>",
		Description: "Show the week containing a date",
	},
	{
		Name:        "/add",
		Usage:       "/add <start> [end] <title>",
		Description: "Add a task",
	},
	{
		Name:        "/move",
		Usage:       "/move <start> [end]",
		Description: "Move the selected task, keeping its length when end is omitted",
	},
	{
		Name:        "/rename",
		Usage:       "/rename <title>",
		Description: "Rename the selected task",
	},
	{
		Name:        "/help",
		Usage:       "/help",
		Description: "Show available commands",
	},
}

// promptHint lists the commands matching the prompt value, or the usage of the
// command being typed.
func promptHint(value string) string {
	if matches := input.PromptMatchingCommands(value, promptCommands); len(matches) > 0 {
		names := make([]string, 0, len(matches))
		for _, c := range matches {
			names = append(names, c.Name)
		}
		return strings.Join(names, "  ")
	}
	name, _ := input.SplitCommand(value)
	for _, c := range promptCommands {
		if c.Name == name {
			return c.Usage
		}
	}
	return ""
}

// handlePromptSubmit processes the submitted prompt. A value without a command
// is treated as a date to jump to.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	name, rest := input.SplitCommand(value)
	switch name {
	case "":
		if rest == "" {
			return m, nil
		}
		return m.submitGoto(rest)
	case "/goto":
		return m.submitGoto(rest)
	case "/add":
		return m.submitAdd(rest)
	case "/move":
		return m.submitMove(rest)
	case "/rename":
		t := m.selectedTask()
		if t == nil {
			m.statusMsg = "No task selected"
			return m, nil
		}
		return m, commands.RenameTask(m.repo, t, rest)
	case "/help":
		names := make([]string, 0, len(promptCommands))
		for _, c := range promptCommands {
			names = append(names, c.Name)
		}
		m.statusMsg = "Commands: " + strings.Join(names, ", ")
		return m, nil
	default:
		m.statusMsg = "Unknown command: " + name
		return m, nil
	}
}

func (m Model) submitGoto(s string) (tea.Model, tea.Cmd) {
	d, err := m.parseDay(s)
	if err != nil {
		return m.fail(err)
	}
	return m.jumpTo(d)
}

func (m Model) submitAdd(s string) (tea.Model, tea.Cmd) {
	dates, title := input.LeadingDates(s, 2, m.isDay)
	if len(dates) == 0 {
		m.statusMsg = "Usage: /add <start> [end] <title>"
		return m, nil
	}

	start, _ := m.parseDay(dates[0])
	end := start
	if len(dates) == 2 {
		end, _ = m.parseDay(dates[1])
	}
	t, err := task.NewWithDates(title, 0, start, end)
	if err != nil {
		return m.fail(err)
	}
	m.selected = 0
	return m, commands.CreateTask(m.repo, t)
}

func (m Model) submitMove(s string) (tea.Model, tea.Cmd) {
	t := m.selectedTask()
	if t == nil {
		m.statusMsg = "No task selected"
		return m, nil
	}
	dates, extra := input.LeadingDates(s, 2, m.isDay)
	if len(dates) == 0 || extra != "" {
		m.statusMsg = "Usage: /move <start> [end]"
		return m, nil
	}

	start, _ := m.parseDay(dates[0])
	end := start.AddDays(t.Days() - 1)
	if len(dates) == 2 {
		end, _ = m.parseDay(dates[1])
	}
	return m, commands.MoveTask(m.repo, t, start, end)
}

func (m Model) parseDay(s string) (dateutil.Date, error) {
	return dateutil.ParseRelativeDate(s, m.now())
}

func (m Model) isDay(s string) bool {
	_, err := m.parseDay(s)
	return err == nil
}
