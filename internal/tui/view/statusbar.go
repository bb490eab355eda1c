package view

import (
	"fmt"
	"procdeck/internal/tui/components"
	"procdeck/internal/tui/model"
	"strings"
)

func renderStatusBar(m *model.Model, width int) string {
	bar := components.NewStatusBar(width)
	if m.Filtering {
		return bar.
			WithLeftText(m.Filter.View()).
			WithRightText(m.Help.ShortHelpView(m.Keys.FilterHelp())).
			Render()
	}

	bar.WithLeftText(m.Help.ShortHelpView(m.Keys.ShortHelp())).WithRightText(statusRight(m))
	if m.StatusBarMessage != "" {
		bar.WithMessage(m.StatusBarMessage, m.StatusBarMessageType)
	}
	return bar.Render()
}

func statusRight(m *model.Model) string {
	var parts []string
	if v := m.Filter.Value(); v != "" {
		parts = append(parts, "filter: "+v)
	}
	if r, ok := m.Selections.Get(model.OutputSelectionID); ok && len(r.Rows) > 0 {
		parts = append(parts, fmt.Sprintf("%d lines selected", len(r.Rows)))
	}
	if m.ShowDocs {
		parts = append(parts, "docs")
	} else if vp := m.Outputs[m.Selected]; vp != nil {
		if vp.Tracking() {
			parts = append(parts, "following")
		} else {
			parts = append(parts, "paused")
		}
	}
	return strings.Join(parts, " · ")
}
