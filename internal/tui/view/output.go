package view

import (
	"procdeck/internal/scroll"
	"procdeck/internal/selection"
	"procdeck/internal/tui/design"
	"procdeck/internal/tui/model"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func renderOutput(m *model.Model) []string {
	l := m.Layout
	width, height := l.Text.Size()
	rows := column(width, l.BodyHeight)
	if width == 0 || height == 0 {
		return rows
	}

	switch {
	case m.Help.ShowAll:
		return placeLines(rows, renderHelp(m), width)
	case m.SelectedProcess() == nil:
		return placeLines(rows, []string{design.EmptyStyle.Render(" no process selected")}, width)
	case m.ShowDocs && m.Docs[m.Selected] == nil:
		return placeLines(rows, []string{design.EmptyStyle.Render(" rendering docs…")}, width)
	}

	vp := m.ActiveViewport()
	if vp == nil {
		return rows
	}
	view := vp.View()
	for i, line := range view.Lines {
		if i >= len(rows) {
			break
		}
		if c, ok := line.(scroll.Content); ok {
			rows[i] = fit(c.Text, width)
		}
	}
	if vp.Length() == 0 && !m.ShowDocs {
		rows[0] = fit(design.EmptyStyle.Render(" no output yet"), width)
	}

	if r, ok := m.Selections.Get(model.OutputSelectionID); ok {
		highlight(rows, r, l.Text.Bounds().X, l.Text.Bounds().Y)
	}
	return rows
}

// highlight reverses the selected cells of rows, which start at screen
// position (left, top).
func highlight(rows []string, r selection.Range, left, top int) {
	for _, seg := range r.Rows {
		i := seg.Row - top
		if i < 0 || i >= len(rows) {
			continue
		}
		row := rows[i]
		start, end := seg.Start-left, seg.End-left+1
		width := ansi.StringWidth(row)
		if start >= width || end <= 0 {
			continue
		}
		start, end = max(start, 0), min(end, width)
		rows[i] = ansi.Truncate(row, start, "") +
			design.SelectionStyle.Render(ansi.Strip(ansi.Cut(row, start, end))) +
			ansi.Cut(row, end, width)
	}
}

func placeLines(rows, lines []string, width int) []string {
	for i, line := range lines {
		if i >= len(rows) {
			break
		}
		rows[i] = fit(line, width)
	}
	return rows
}

func renderHelp(m *model.Model) []string {
	lines := []string{" " + design.HelpTitleStyle.Render("Keys"), ""}
	for _, line := range strings.Split(m.Help.FullHelpView(m.Keys.FullHelp()), "\n") {
		lines = append(lines, " "+line)
	}
	return lines
}

func renderScrollbar(m *model.Model) []string {
	l := m.Layout
	width, height := l.Scrollbar.Size()
	rows := column(width, l.BodyHeight)
	if width == 0 || m.Help.ShowAll || m.SelectedProcess() == nil {
		return rows
	}
	vp := m.ActiveViewport()
	if vp == nil {
		return rows
	}

	top, size, ok := Thumb(vp.Length(), vp.Height(), vp.Offset())
	if !ok {
		return rows
	}
	for i := range min(height, len(rows)) {
		if i >= top && i < top+size {
			rows[i] = design.ScrollThumbStyle.Render("┃")
		} else {
			rows[i] = design.ScrollTrackStyle.Render("│")
		}
	}
	return rows
}

// Thumb places the scrollbar thumb for a viewport of height rows over length
// lines scrolled to offset. It reports false when everything fits.
func Thumb(length, height, offset int) (top, size int, ok bool) {
	if height <= 0 || length <= height {
		return 0, 0, false
	}
	size = max(height*height/length, 1)
	travel := height - size
	scrollable := length - height
	offset = min(max(offset, 0), scrollable)
	top = (offset*travel + scrollable/2) / scrollable
	return top, size, true
}
