package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/tally/pkg/timeutil"
)

// ────────────────────────────────────────────────────────────
// Card geometry
// ────────────────────────────────────────────────────────────
//
// A card is four content lines inside a rounded border:
//
//	╭────────────────────╮
//	│        laps        │
//	│         12         │
//	│   [ - ]  [ + ]     │
//	│ last 14:03:11.201  │
//	╰────────────────────╯

const (
	cardWidth        = 20 // lipgloss Width: content plus horizontal padding
	cardContentWidth = cardWidth - 2
	cardGap          = 1
	cellWidth        = cardWidth + 2 + cardGap // borders and gap
	cardHeight       = 6

	lineButtons = 3 // buttons row, counting the top border as row 0

	minusLabel = "[ - ]"
	plusLabel  = "[ + ]"
	buttonSep  = "  "

	// gridTop is the first screen row of the grid: header, input, blank.
	gridTop = 3
	// chromeHeight counts every non-grid row: header, input, blank,
	// detail line and footer.
	chromeHeight = 5
)

// cardAction is what a click on a card requests.
type cardAction int

const (
	actionNone cardAction = iota
	actionSelect
	actionDecrement
	actionIncrement
)

// columns returns how many cards fit side by side.
func (m *Model) columns() int {
	return maxInt(1, m.width/cellWidth)
}

// visibleRows returns how many card rows fit on screen.
func (m *Model) visibleRows() int {
	return maxInt(1, (m.height-chromeHeight)/cardHeight)
}

// ensureVisible scrolls the grid so the selected card is on screen.
func (m *Model) ensureVisible() {
	row := m.selected / m.columns()
	rows := m.visibleRows()
	if row < m.scrollRow {
		m.scrollRow = row
	}
	if row >= m.scrollRow+rows {
		m.scrollRow = row - rows + 1
	}
}

// hitTest maps a screen cell to a card index and the action under it.
func (m *Model) hitTest(x, y int) (int, cardAction) {
	if y < gridTop || x < 0 {
		return -1, actionNone
	}
	row := (y-gridTop)/cardHeight + m.scrollRow
	col := x / cellWidth
	if col >= m.columns() || row-m.scrollRow >= m.visibleRows() {
		return -1, actionNone
	}
	idx := row*m.columns() + col
	if idx >= m.binder.Len() {
		return -1, actionNone
	}

	localX := x % cellWidth
	localY := (y - gridTop) % cardHeight
	if localX >= cellWidth-cardGap {
		return -1, actionNone
	}
	if localY != lineButtons {
		return idx, actionSelect
	}

	// Content starts after the left border and one column of padding.
	buttonsWidth := lipgloss.Width(minusLabel + buttonSep + plusLabel)
	minusStart := 2 + (cardContentWidth-buttonsWidth)/2
	minusEnd := minusStart + lipgloss.Width(minusLabel)
	plusStart := minusEnd + lipgloss.Width(buttonSep)
	plusEnd := plusStart + lipgloss.Width(plusLabel)

	switch {
	case localX >= minusStart && localX < minusEnd:
		return idx, actionDecrement
	case localX >= plusStart && localX < plusEnd:
		return idx, actionIncrement
	default:
		return idx, actionSelect
	}
}

// renderCard draws a single counter card.
func renderCard(c card, selected bool) string {
	meta := "no events"
	if c.summary.LastEvent != nil {
		meta = "last " + timeutil.FormatTimestamp(*c.summary.LastEvent)
	}

	lines := []string{
		cardTitleStyle.Render(truncate(c.name, cardContentWidth)),
		cardCountStyle.Render(fmt.Sprintf("%d", c.count)),
		cardMinusStyle.Render(minusLabel) + buttonSep + cardPlusStyle.Render(plusLabel),
		cardMetaStyle.Render(meta),
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderGrid lays out the visible rows of cards.
func renderGrid(m *Model) string {
	if m.binder.Len() == 0 {
		empty := emptyStateStyle.Render(
			"No counters yet.\n\n" +
				"Press n, type a name and hit enter.")
		return lipgloss.Place(
			m.width,
			maxInt(1, m.height-chromeHeight),
			lipgloss.Center,
			lipgloss.Center,
			empty,
		)
	}

	cols := m.columns()
	start := m.scrollRow * cols
	end := minInt(m.binder.Len(), start+m.visibleRows()*cols)

	var rows []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cells []string
		for i := rowStart; i < minInt(rowStart+cols, end); i++ {
			c, _ := m.binder.at(i)
			cells = append(cells, renderCard(c, i == m.selected), strings.Repeat(" ", cardGap))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderDetail shows the summary of the selected counter on one line.
func renderDetail(m *Model) string {
	c, ok := m.binder.at(m.selected)
	if !ok {
		return ""
	}

	s := c.summary
	parts := []string{
		detailValueStyle.Render(c.name),
		detailLabelStyle.Render("total ") + detailValueStyle.Render(fmt.Sprintf("%d", s.Total)),
	}
	if s.LastEvent != nil {
		parts = append(parts,
			detailLabelStyle.Render("last ")+detailValueStyle.Render(timeutil.RelativeTime(*s.LastEvent, m.now())))
	}
	if s.Total > 1 {
		parts = append(parts,
			detailLabelStyle.Render("mean gap ")+detailValueStyle.Render(timeutil.FormatDuration(int64(s.MeanIntervalMs))),
			detailLabelStyle.Render("rate ")+detailValueStyle.Render(fmt.Sprintf("%.2f/min", s.PerMinute)))
	}
	return " " + strings.Join(parts, headerSepStyle.Render("  │  "))
}
