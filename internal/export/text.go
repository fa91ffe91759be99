package export

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/weekview/internal/calendar"
)

const (
	defaultTextWidth = 80
	minColumnWidth   = 5
	maxColumnWidth   = 24
)

// TextOptions controls the plain text week grid.
type TextOptions struct {
	// Width is the total width in cells; <= 0 means 80.
	Width int
	// Header, when set, decorates the header line.
	Header func(s string) string
	// Bar, when set, decorates each task bar.
	Bar func(p calendar.PlacedTask, s string) string
}

// ColumnWidth returns the width of one day column for the given total width.
func (o TextOptions) ColumnWidth() int {
	width := o.Width
	if width <= 0 {
		width = defaultTextWidth
	}
	cw := width / calendar.DaysInWindow
	return max(minColumnWidth, min(cw, maxColumnWidth))
}

// Text renders the layout as a 7 column grid: a header line, a rule and one
// line per row. Bars open with '<' when the task started before the window
// and close with '>' when it continues after it.
func Text(l calendar.Layout, opts TextOptions) string {
	cw := opts.ColumnWidth()
	var b strings.Builder

	var header strings.Builder
	for _, h := range l.Window.Headers() {
		header.WriteString(runewidth.FillRight(runewidth.Truncate(h, cw-1, ""), cw))
	}
	line := strings.TrimRight(header.String(), " ")
	if opts.Header != nil {
		line = opts.Header(line)
	}
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("─", cw*calendar.DaysInWindow))
	b.WriteByte('\n')

	for i := range l.Rows {
		b.WriteString(textRow(l, i, cw, opts.Bar))
		b.WriteByte('\n')
	}
	return b.String()
}

func textRow(l calendar.Layout, row, cw int, decorate func(calendar.PlacedTask, string) string) string {
	var b strings.Builder
	col := 1
	for _, p := range l.Row(row) {
		if p.Column.Start > col {
			b.WriteString(strings.Repeat(" ", (p.Column.Start-col)*cw))
		}
		bar := Bar(l, p, p.Column.Span*cw-1)
		if decorate != nil {
			bar = decorate(p, bar)
		}
		b.WriteString(bar)
		b.WriteByte(' ')
		col = p.Column.End() + 1
	}
	return strings.TrimRight(b.String(), " ")
}

// Bar renders a task as a bracketed label exactly width cells wide.
func Bar(l calendar.Layout, p calendar.PlacedTask, width int) string {
	left, right := "[", "]"
	if p.Task.Start.Before(l.Window.Start()) {
		left = "<"
	}
	if p.Task.End.After(l.Window.End()) {
		right = ">"
	}
	inner := max(width-2, 0)
	label := runewidth.Truncate(p.Task.Title, inner, "…")
	return left + runewidth.FillRight(label, inner) + right
}
