package view

import (
	"procdeck/internal/interact"
	"procdeck/internal/tui/design"
	"procdeck/internal/tui/model"

	"github.com/mattn/go-runewidth"
)

func renderSidebar(m *model.Model) []string {
	l := m.Layout
	width := l.SidebarWidth
	rows := column(width, l.BodyHeight)
	if width == 0 {
		return rows
	}

	var hovered, active *interact.Node
	if m.Window != nil {
		hovered, active = m.Window.Hovered(), m.Window.Active()
	}

	y := 0
	put := func(s string) {
		if y < len(rows) {
			rows[y] = fit(s, width)
		}
		y++
	}

	if len(l.Sections) == 0 {
		put(design.EmptyStyle.Render(" no matches"))
		return rows
	}

	for _, section := range l.Sections {
		titleStyle := design.SectionTitleStyle
		if groupActive(m, section) {
			titleStyle = design.SectionTitleActiveStyle
		}
		put(titleStyle.Render(" " + runewidth.Truncate(section.Title, width-1, "…")))

		for _, name := range section.Names {
			p, err := m.Store.Get(name)
			if err != nil {
				put("")
				continue
			}
			node := m.ItemNodes[name]

			style := design.ListItemStyle
			switch {
			case name == m.Selected && node != nil && node == active:
				style = design.ListItemSelectedStyle
			case name == m.Selected:
				style = design.ListItemSelectedStyle.Background(design.ColorSurfaceAlt)
			case node != nil && node == hovered:
				style = design.ListItemHoverStyle
			case !p.State().Alive():
				style = design.ListItemDeadStyle
			}

			label := runewidth.Truncate(name, max(width-4, 1), "…")
			line := " " + design.StateIcon(p.State(), p.ExitCode()) + " " + style.Render(runewidth.FillRight(label, width-3))
			put(line)
		}
		put("")
	}
	return rows
}

func renderSeparator(m *model.Model) []string {
	l := m.Layout
	style := design.SeparatorStyle
	if m.Window != nil && m.OutputNode != nil && m.Window.Active() == m.OutputNode {
		style = design.SeparatorFocusStyle
	}
	rows := make([]string, l.BodyHeight)
	for i := range rows {
		rows[i] = style.Render("│")
	}
	return rows
}

func groupActive(m *model.Model, section model.Section) bool {
	if m.Window == nil {
		return false
	}
	n, ok := m.Window.Lookup(section.Box)
	return ok && n.Group() != nil && n.Group().Active()
}
