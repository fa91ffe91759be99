package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterLines is the height of the footer.
const FooterLines = 4

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW int

	StatsLine  string
	DetailLine string
	// PromptLine replaces the status line while the prompt is open.
	PromptLine string
	StatusLine string
	HelpLine   string

	StatsStyle  lipgloss.Style
	DetailStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// RenderFooter renders stats, selection detail, prompt or status, and help lines.
func RenderFooter(state FooterViewState) string {
	status := footerLine(state.InnerW, state.StatusStyle, state.StatusLine)
	if state.PromptLine != "" {
		status = footerLine(state.InnerW, lipgloss.NewStyle(), state.PromptLine)
	}

	return strings.Join([]string{
		footerLine(state.InnerW, state.StatsStyle, state.StatsLine),
		footerLine(state.InnerW, state.DetailStyle, state.DetailLine),
		status,
		footerLine(state.InnerW, state.HelpStyle, state.HelpLine),
	}, "\n")
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "…")
	}
	return style.Render(content)
}
