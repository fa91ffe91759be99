package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/export"
)

// BoardState holds what is needed to draw the header, rule and lanes.
type BoardState struct {
	Layout     calendar.Layout
	ColWidth   int
	TodayIndex int   // -1 when today is not shown
	Selected   int64 // task ID, 0 for none

	// Lanes [FirstRow, FirstRow+VisibleRows) are drawn; VisibleRows <= 0 draws all.
	FirstRow    int
	VisibleRows int

	HeaderStyle lipgloss.Style
	TodayStyle  lipgloss.Style
	RuleStyle   lipgloss.Style
	EmptyStyle  lipgloss.Style
	BarStyle    func(p calendar.PlacedTask, selected bool) lipgloss.Style
	EmptyText   string
}

// VisibleRange returns the lanes RenderBoard draws.
func (s BoardState) VisibleRange() (first, last int) {
	first = min(max(s.FirstRow, 0), s.Layout.Rows)
	last = s.Layout.Rows
	if s.VisibleRows > 0 {
		last = min(last, first+s.VisibleRows)
	}
	return first, last
}

// RenderBoard draws the week board, one line per lane.
func RenderBoard(s BoardState) string {
	lines := []string{
		boardHeader(s),
		s.RuleStyle.Render(strings.Repeat("─", s.ColWidth*calendar.DaysInWindow)),
	}

	if s.Layout.Empty() {
		lines = append(lines, s.EmptyStyle.Render(s.EmptyText))
		return strings.Join(lines, "\n")
	}

	first, last := s.VisibleRange()
	for row := first; row < last; row++ {
		lines = append(lines, lane(s, row))
	}
	return strings.Join(lines, "\n")
}

func boardHeader(s BoardState) string {
	var b strings.Builder
	for i, label := range s.Layout.Window.Headers() {
		style := s.HeaderStyle
		if i == s.TodayIndex {
			style = s.TodayStyle
		}
		label = ansi.Truncate(label, max(s.ColWidth-1, 0), "")
		b.WriteString(style.Width(s.ColWidth).Render(label))
	}
	return b.String()
}

func lane(s BoardState, row int) string {
	var b strings.Builder
	col := 1
	for _, p := range s.Layout.Row(row) {
		if gap := p.Column.Start - col; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap*s.ColWidth))
		}
		bar := export.Bar(s.Layout, p, p.Column.Span*s.ColWidth-1)
		if s.BarStyle != nil {
			bar = s.BarStyle(p, p.Task.ID == s.Selected).Render(bar)
		}
		b.WriteString(bar)
		b.WriteByte(' ')
		col = p.Column.End() + 1
	}
	return strings.TrimRight(b.String(), " ")
}
