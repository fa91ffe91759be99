package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	RangeStyle lipgloss.Style

	// Board
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	RuleStyle           lipgloss.Style
	EmptyStyle          lipgloss.Style

	// Footer
	StatsStyle  lipgloss.Style
	DetailStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	// Overlays (full help, delete confirmation)
	PanelStyle   lipgloss.Style
	ConfirmStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p, colorBg: p.Bg}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1)
	s.RangeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Background(p.Bg).
		Padding(0, 1)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.FgMuted).
		Background(p.Bg)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(p.Accent).
		Underline(true)
	s.RuleStyle = lipgloss.NewStyle().
		Foreground(p.BgSelection).
		Background(p.Bg)
	s.EmptyStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.StatsStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)
	s.DetailStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg)
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)
	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning).
		Background(p.Bg)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)
	s.PromptStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.BgHighlight).
		Foreground(p.Fg).
		Background(p.BgHighlight).
		Padding(1, 2)
	s.ConfirmStyle = s.PanelStyle.
		BorderForeground(p.Warning)

	s.AppStyle = lipgloss.NewStyle().
		Background(p.Bg).
		Padding(0, 1)

	return s
}

// Bar returns the style of a task bar. Alternating rows get a shifted shade so
// adjacent lanes of the same project stay distinguishable.
func (s *Styles) Bar(p calendar.PlacedTask, selected bool) lipgloss.Style {
	colors := s.palette.ProjectBar(p.Task.ProjectID, p.Row%2 == 1)
	style := lipgloss.NewStyle()
	if selected {
		colors = s.palette.SelectedBar(p.Task.ProjectID)
		style = style.Bold(true)
	}
	return style.Foreground(colors.Fg).Background(colors.Bg)
}
