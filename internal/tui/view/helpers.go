package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
// Lines wider than width are cut.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Truncate(line, width, "")
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	return strings.Join(lines, "\n")
}

// RenderOverlay centers panel over base, which is padded to width x height.
// The panel keeps its background across the resets embedded in styled text.
func RenderOverlay(base, panel string, width, height int, panelBg lipgloss.Color) string {
	panelLines := strings.Split(panel, "\n")
	panelHeight := len(panelLines)

	panelWidth := 0
	for _, line := range panelLines {
		panelWidth = max(panelWidth, lipgloss.Width(line))
	}
	if panelWidth == 0 {
		return base
	}
	panelWidth = min(panelWidth, width)

	top := max((height-panelHeight)/2, 0)
	left := max((width-panelWidth)/2, 0)

	for i, line := range panelLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > panelWidth {
			line = ansi.Cut(line, 0, panelWidth)
		}
		if lineWidth < panelWidth {
			line += lipgloss.NewStyle().Background(panelBg).Render(strings.Repeat(" ", panelWidth-lineWidth))
		}
		panelLines[i] = applyBackgroundResets(line, panelBg) + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")

	lines := make([]string, 0, height)
	for row := 0; row < height && row < len(baseLines); row++ {
		if row < top || row >= top+panelHeight {
			lines = append(lines, baseLines[row])
			continue
		}
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+panelWidth, width)
		lines = append(lines, leftSlice+panelLines[row-top]+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// applyBackgroundResets reapplies the panel background after ANSI resets.
func applyBackgroundResets(line string, bg lipgloss.Color) string {
	bgSeq := backgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
