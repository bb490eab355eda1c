package view

import (
	"procdeck/internal/tui/model"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Render draws the whole dashboard. Every row is exactly m.Width cells wide
// and there are exactly m.Height rows, matching m.Layout.
func Render(m *model.Model) string {
	l := m.Layout
	if l == nil || l.Width == 0 || l.Height == 0 {
		return ""
	}

	rows := make([]string, 0, l.Height)
	rows = append(rows, renderHeader(m, l.Width))

	sidebar := renderSidebar(m)
	separator := renderSeparator(m)
	output := renderOutput(m)
	scrollbar := renderScrollbar(m)
	for i := range l.BodyHeight {
		rows = append(rows, sidebar[i]+separator[i]+output[i]+scrollbar[i])
	}

	if l.Height > 1 {
		rows = append(rows, renderStatusBar(m, l.Width))
	}
	return strings.Join(rows[:l.Height], "\n")
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// column returns height rows of width blanks.
func column(width, height int) []string {
	out := make([]string, height)
	for i := range out {
		out[i] = strings.Repeat(" ", max(width, 0))
	}
	return out
}

func visibleWidth(s string) int {
	return ansi.StringWidth(s)
}
