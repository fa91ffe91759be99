package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekview/internal/export"
	"github.com/javiermolinar/weekview/internal/tui/commands"
	"github.com/javiermolinar/weekview/internal/tui/input"
)

// keyMap defines the board key bindings. It implements help.KeyMap.
type keyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Down     key.Binding
	Up       key.Binding
	Goto     key.Binding
	Add      key.Binding
	Move     key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevWeek: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next week")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next task")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev task")),
		Goto:     key.NewBinding(key.WithKeys("g", "/"), key.WithHelp("g", "go to date")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Rename:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy week")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Down, k.Goto, k.Add, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help panel, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek, k.Today, k.Goto},
		{k.Down, k.Up, k.Reload, k.Copy},
		{k.Add, k.Move, k.Rename, k.Delete},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Debug("key press", "key", msg.String(), "mode", m.mode.String())

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeHelp:
		m.mode = ModeNormal
		m.help.ShowAll = false
		return m, nil
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, m.keys.PrevWeek):
		return m.shiftWeek(false)
	case key.Matches(msg, m.keys.NextWeek):
		return m.shiftWeek(true)
	case key.Matches(msg, m.keys.Today):
		return m.jumpTo(m.today())
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.statusMsg = "Reloading..."
		return m, m.reload()

	// Prompt commands
	case key.Matches(msg, m.keys.Goto):
		return m.openPrompt("/goto ")
	case key.Matches(msg, m.keys.Add):
		return m.openPrompt("/add ")
	case key.Matches(msg, m.keys.Move):
		t := m.selectedTask()
		if t == nil {
			m.statusMsg = "No task selected"
			return m, nil
		}
		value := "/move " + t.Start.String()
		if t.End != t.Start {
			value += " " + t.End.String()
		}
		return m.openPrompt(value)
	case key.Matches(msg, m.keys.Rename):
		t := m.selectedTask()
		if t == nil {
			m.statusMsg = "No task selected"
			return m, nil
		}
		return m.openPrompt("/rename " + t.Title)

	// Actions
	case key.Matches(msg, m.keys.Delete):
		t := m.selectedTask()
		if t == nil {
			m.statusMsg = "No task selected"
			return m, nil
		}
		m.pendingDelete = t
		m.mode = ModeConfirm
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		week := m.currentWeek()
		if week == nil || week.Layout.Empty() {
			m.statusMsg = "No tasks to copy"
			return m, nil
		}
		text := export.Text(week.Layout, export.TextOptions{Width: m.boardWidth()})
		return m, commands.CopyText(text)
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil
	}

	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.closePrompt()
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.pendingDelete
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		m.pendingDelete = nil
		if t == nil {
			return m, nil
		}
		return m, commands.DeleteTask(m.repo, t.ID)
	case "n", "esc", "q":
		m.mode = ModeNormal
		m.pendingDelete = nil
		m.statusMsg = "Delete cancelled"
	}
	return m, nil
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m Model) confirmText() string {
	if m.pendingDelete == nil {
		return ""
	}
	return fmt.Sprintf("Delete %q?\n\n[y] delete   [n] keep", m.pendingDelete.Title)
}
