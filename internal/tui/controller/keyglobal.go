package controller

import (
	"fmt"
	"procdeck/internal/interact"
	"procdeck/internal/scroll"
	"procdeck/internal/selection"
	"procdeck/internal/tui/model"
	"procdeck/pkg/logging"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 3 * time.Second

// handleGlobalKey runs for every keystroke that reached the root of the
// interaction tree unhandled.
func handleGlobalKey(m *model.Model, e *interact.Event) {
	if e.IsTab() {
		return
	}
	keyMsg := m.LastKey
	p := m.SelectedProcess()

	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		m.Store.KillAll()
		m.QuitApp = true
		m.Queue(tea.Quit)
	case key.Matches(keyMsg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	case key.Matches(keyMsg, m.Keys.Filter):
		m.Filtering = true
		m.Queue(m.Filter.Focus())
	case key.Matches(keyMsg, m.Keys.Esc):
		switch {
		case m.Help.ShowAll:
			m.Help.ShowAll = false
		case m.Selections.HasSelections():
			m.Selections.ClearAll()
		case m.Filter.Value() != "":
			m.Filter.SetValue("")
			rebuild(m)
		case m.ShowDocs:
			m.ShowDocs = false
		}
	case key.Matches(keyMsg, m.Keys.Copy):
		copySelection(m)
	case p == nil:
		return
	case key.Matches(keyMsg, m.Keys.Restart):
		m.Queue(restartProcess(m.Ctx, p))
	case key.Matches(keyMsg, m.Keys.Kill):
		if p.State().Alive() {
			m.Queue(killProcess(p))
		}
	case key.Matches(keyMsg, m.Keys.Docs):
		toggleDocs(m)
	default:
		scrollKey(m, keyMsg)
	}
}

// handleOutputKey lets the arrows scroll while the output pane has focus.
func handleOutputKey(m *model.Model, e *interact.Event) {
	if e.Key.Modified() {
		return
	}
	vp := m.ActiveViewport()
	if vp == nil {
		return
	}
	switch {
	case e.Key.Up:
		e.StopPropagation()
		scrollBy(vp, -1)
	case e.Key.Down:
		e.StopPropagation()
		scrollBy(vp, 1)
	}
}

func handleWheel(m *model.Model, e *interact.Event) {
	vp := m.ActiveViewport()
	if vp == nil {
		return
	}
	switch e.Button {
	case interact.ButtonWheelUp:
		scrollBy(vp, -1)
	case interact.ButtonWheelDown:
		scrollBy(vp, 1)
	}
}

func scrollKey(m *model.Model, keyMsg tea.KeyMsg) {
	vp := m.ActiveViewport()
	if vp == nil {
		return
	}
	page := max(vp.Height()-1, 1)
	switch {
	case key.Matches(keyMsg, m.Keys.LineUp):
		scrollBy(vp, -1)
	case key.Matches(keyMsg, m.Keys.LineDown):
		scrollBy(vp, 1)
	case key.Matches(keyMsg, m.Keys.PageUp):
		scrollBy(vp, -page)
	case key.Matches(keyMsg, m.Keys.PageDown):
		scrollBy(vp, page)
	case key.Matches(keyMsg, m.Keys.Top):
		vp.ScrollToTop()
	case key.Matches(keyMsg, m.Keys.Bottom):
		vp.Track()
	}
}

// scrollBy moves vp by delta lines, keeping the top of the content in reach
// and re-arming the live tail once the bottom is reached.
func scrollBy(vp *scroll.Scrollable, delta int) {
	if delta == 0 {
		return
	}
	vp.Scroll(delta)
	bottom := vp.Length() - vp.Height()
	switch {
	case vp.Offset() >= bottom:
		vp.Track()
	case vp.Offset() < min(bottom, 0):
		vp.SetOffset(min(bottom, 0))
	case vp.Offset() < 0:
		vp.SetOffset(0)
	}
}

func toggleDocs(m *model.Model) {
	p := m.SelectedProcess()
	if !m.ShowDocs && !p.HasDocs() {
		m.Queue(m.SetStatusMessage(fmt.Sprintf("%s has no docs", p.Name()), model.StatusBarWarning, statusTimeout))
		return
	}
	m.ShowDocs = !m.ShowDocs
	if m.ShowDocs {
		m.Queue(docsFor(m))
	}
}

// docsFor renders the selected process's docs unless a rendering at the
// current width exists.
func docsFor(m *model.Model) tea.Cmd {
	p := m.SelectedProcess()
	if p == nil || !p.HasDocs() || m.Layout == nil {
		return nil
	}
	width, _ := m.Layout.Text.Size()
	if m.Docs[p.Name()] != nil && m.DocsWidth == width {
		return nil
	}
	return renderDocs(p, width)
}

func copySelection(m *model.Model) {
	copied, err := selection.Copy(m.LastFrame, m.Selections, m.Clipboard)
	switch {
	case err != nil:
		logging.Error("TUI", err, "Copy failed")
		m.Queue(m.SetStatusMessage("Copy failed", model.StatusBarError, statusTimeout))
	case !copied:
		m.Queue(m.SetStatusMessage("Nothing selected", model.StatusBarWarning, statusTimeout))
	default:
		r, _ := m.Selections.Active()
		m.Queue(m.SetStatusMessage(fmt.Sprintf("Copied %d lines", len(r.Rows)), model.StatusBarSuccess, statusTimeout))
	}
}
