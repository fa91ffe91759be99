package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekview/internal/calendar"
	"github.com/javiermolinar/weekview/internal/tui/view"
)

const (
	titleLines  = 2 // title bar and a blank line
	boardChrome = 2 // day headers and rule
	minColWidth = 4
)

// View renders the board with the footer, and the help or confirm panel on top.
func (m Model) View() string {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		EmptyPlaceholder: "Loading...",
		OverlayBg:        m.styles.palette.BgHighlight,
	}
	if m.width == 0 || m.height == 0 {
		return view.Render(state)
	}

	state.BaseContent = m.renderAppContent()
	switch m.mode {
	case ModeHelp:
		state.ShowOverlay = true
		state.OverlayContent = m.styles.PanelStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
	case ModeConfirm:
		state.ShowOverlay = true
		state.OverlayContent = m.styles.ConfirmStyle.Render(m.confirmText())
	}
	return view.Render(state)
}

func (m Model) innerWidth() int {
	return max(m.width-2, 0)
}

// boardWidth is the width of the seven day columns.
func (m Model) boardWidth() int {
	return m.colWidth() * calendar.DaysInWindow
}

func (m Model) colWidth() int {
	return max(m.innerWidth()/calendar.DaysInWindow, minColWidth)
}

// visibleLanes is the number of lanes that fit between the title and footer.
func (m Model) visibleLanes() int {
	return max(m.height-titleLines-boardChrome-view.FooterLines-1, 1)
}

func (m Model) renderAppContent() string {
	innerW := m.innerWidth()
	board := m.boardState()

	boardH := max(m.height-titleLines-view.FooterLines, boardChrome+1)
	boardBox := view.PlaceBox(innerW, boardH, lipgloss.Top, view.RenderBoard(board), m.styles.colorBg)
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		"",
		boardBox,
		view.RenderFooter(m.footerState(board)),
	)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("WEEKVIEW") + m.styles.RangeStyle.Render(view.WeekTitle(m.window))
	if m.loading {
		title += m.styles.HelpStyle.Render(" loading…")
	}
	return title
}

func (m Model) boardState() view.BoardState {
	_, todayIdx := view.HeaderLabels(m.window, m.today())
	state := view.BoardState{
		Layout:      calendar.Layout{Window: m.window},
		ColWidth:    m.colWidth(),
		TodayIndex:  todayIdx,
		Selected:    m.selected,
		VisibleRows: m.visibleLanes(),
		HeaderStyle: m.styles.DayHeaderStyle,
		TodayStyle:  m.styles.DayHeaderTodayStyle,
		RuleStyle:   m.styles.RuleStyle,
		EmptyStyle:  m.styles.EmptyStyle,
		BarStyle:    m.styles.Bar,
		EmptyText:   "Loading...",
	}

	week := m.currentWeek()
	if week == nil {
		return state
	}
	state.Layout = week.Layout
	state.EmptyText = "No tasks this week. Press a to add one."

	// Scroll so the selected lane stays visible.
	if p, ok := week.Layout.Find(m.selected); ok && p.Row >= state.VisibleRows {
		state.FirstRow = p.Row - state.VisibleRows + 1
	}
	return state
}

func (m Model) footerState(board view.BoardState) view.FooterViewState {
	state := view.FooterViewState{
		InnerW:      m.innerWidth(),
		HelpLine:    m.help.ShortHelpView(m.keys.ShortHelp()),
		StatsStyle:  m.styles.StatsStyle,
		DetailStyle: m.styles.DetailStyle,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
	}

	if week := m.currentWeek(); week != nil {
		state.StatsLine = week.Stats.String()
		if week.Stats.Spanning > 0 {
			state.StatsLine += fmt.Sprintf(" · %d spanning", week.Stats.Spanning)
		}
	}

	var detail []string
	if t := m.selectedTask(); t != nil {
		detail = append(detail, view.FormatTask(t))
	}
	if first, last := board.VisibleRange(); last-first < board.Layout.Rows {
		detail = append(detail, fmt.Sprintf("(rows %d-%d of %d)", first+1, last, board.Layout.Rows))
	}
	state.DetailLine = strings.Join(detail, "  ")

	state.StatusLine = m.statusMsg
	if m.err != nil {
		state.StatusStyle = m.styles.ErrorStyle
	}
	if m.mode == ModePrompt {
		state.PromptLine = m.prompt.View()
		if hint := promptHint(m.prompt.Value()); hint != "" {
			state.PromptLine += "  " + m.styles.HelpStyle.Render(hint)
		}
	}
	return state
}
