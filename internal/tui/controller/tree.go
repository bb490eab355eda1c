package controller

import (
	"procdeck/internal/interact"
	"procdeck/internal/selection"
	"procdeck/internal/tui/model"
	"procdeck/pkg/logging"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// sidebarGroups lists the sidebar sections, narrowed by the filter.
func sidebarGroups(m *model.Model) []model.SidebarGroup {
	pattern := strings.TrimSpace(m.Filter.Value())
	var groups []model.SidebarGroup
	for _, g := range m.Store.Groups() {
		names := make([]string, len(g.Processes))
		for i, p := range g.Processes {
			names[i] = p.Name()
		}
		if pattern != "" {
			matches := fuzzy.Find(pattern, names)
			indexes := make([]int, len(matches))
			for i, match := range matches {
				indexes[i] = match.Index
			}
			slices.Sort(indexes)
			filtered := make([]string, len(indexes))
			for i, idx := range indexes {
				filtered[i] = names[idx]
			}
			names = filtered
		}
		if len(names) > 0 {
			groups = append(groups, model.SidebarGroup{Title: g.Title, Names: names})
		}
	}
	return groups
}

// rebuild recomputes the layout and interaction tree when the terminal size
// or the sidebar structure changed.
func rebuild(m *model.Model) {
	groups := sidebarGroups(m)
	sig := model.Signature(m.Width, m.Height, groups)
	if m.Window != nil && sig == m.Signature {
		return
	}

	outputFocused := m.Window != nil && m.OutputNode != nil && m.Window.Active() == m.OutputNode
	if m.Selectable != nil {
		// Keep the selection across frames; only the drag state belongs to
		// the old tree.
		if r, ok := m.Selections.Get(model.OutputSelectionID); ok {
			defer func() {
				m.Selections.Set(r.ID, r.Start, r.End, m.Selectable.Box())
			}()
		}
	}

	m.Signature = sig
	m.Layout = model.NewLayout(m.Width, m.Height, groups)
	m.ResizeViewports()
	buildWindow(m)

	switch {
	case outputFocused:
		m.Window.Focus(m.OutputNode)
	case m.ItemNodes[m.Selected] != nil:
		m.Window.Focus(m.ItemNodes[m.Selected])
	}
}

// buildWindow creates the interaction tree for m.Layout: one list group per
// sidebar section and a group holding the output pane.
func buildWindow(m *model.Model) {
	l := m.Layout
	w := interact.NewWindow()
	m.Window = w
	m.ItemNodes = make(map[string]*interact.Node)

	w.Root().AddListener(interact.EventInput, func(e *interact.Event) {
		handleGlobalKey(m, e)
	})

	for _, section := range l.Sections {
		group := w.NewGroup(section.Box, interact.AsList(interact.Vertical))
		if err := group.Connect(); err != nil {
			logging.Error("TUI", err, "Failed to connect section %s", section.Title)
			continue
		}
		for i, item := range section.Items {
			name := section.Names[i]
			node := w.NewFocusable(item)
			if err := node.Connect(); err != nil {
				logging.Error("TUI", err, "Failed to connect item %s", name)
				continue
			}
			node.AddListener(interact.EventFocus, func(*interact.Event) {
				selectProcess(m, name)
			})
			m.ItemNodes[name] = node
		}
	}

	outputGroup := w.NewGroup(l.Output)
	if err := outputGroup.Connect(); err != nil {
		logging.Error("TUI", err, "Failed to connect output group")
	}
	m.OutputNode = w.NewFocusable(l.Content)
	if err := m.OutputNode.Connect(); err != nil {
		logging.Error("TUI", err, "Failed to connect output pane")
	}
	m.OutputNode.AddListener(interact.EventInput, func(e *interact.Event) {
		handleOutputKey(m, e)
	})
	m.OutputNode.AddListener(interact.EventMouseDown, func(e *interact.Event) {
		handleWheel(m, e)
	})

	m.Selectable = selection.NewSelectable(w, l.Text, m.Selections, model.OutputSelectionID)
	if err := m.Selectable.Connect(); err != nil {
		logging.Error("TUI", err, "Failed to connect output selection")
	}
}

// selectProcess shows name in the output pane.
func selectProcess(m *model.Model, name string) {
	if m.Selected == name {
		return
	}
	m.Selected = name
	m.Selections.Clear(model.OutputSelectionID)
	if p := m.SelectedProcess(); p != nil {
		if p.State().Alive() && !p.IsVirtual() {
			m.Queue(sampleStats(p))
		}
		if m.ShowDocs {
			m.Queue(docsFor(m))
		}
	}
}
