package controller

import (
	"fmt"
	"procdeck/internal/scroll"
	"procdeck/internal/tui/model"
	"procdeck/pkg/logging"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update routes one message through the model. Keyboard and mouse input are
// dispatched into the interaction tree; everything else updates state
// directly.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		rebuild(m)
		if m.ShowDocs {
			m.Queue(docsFor(m))
		}

	case tea.KeyMsg:
		if m.Window == nil {
			rebuild(m)
		}
		if m.Filtering {
			cmds = append(cmds, handleFilterKey(m, msg))
			break
		}
		m.LastKey = msg
		input, k := toInteractKey(msg)
		m.Window.DispatchInput(input, k)

	case tea.MouseMsg:
		if m.Window == nil || !m.Mouse {
			break
		}
		if t, button, ok := toInteractMouse(msg); ok {
			m.Window.DispatchMouse(t, msg.X, msg.Y, button)
		}

	case model.ProcessUpdateMsg:
		if m.Selected == "" {
			if first := m.Store.First(); first != nil {
				m.Selected = first.Name()
			}
		}
		names := drainUpdates(m, msg.Name)
		for name := range names {
			if vp, ok := m.Outputs[name]; ok {
				vp.Update()
			}
		}
		rebuild(m)
		cmds = append(cmds, waitForUpdate(m))

	case model.StatsTickMsg:
		if p := m.SelectedProcess(); p != nil && p.State().Alive() && !p.IsVirtual() {
			cmds = append(cmds, sampleStats(p))
		}
		cmds = append(cmds, statsTick())

	case model.StatsMsg:
		if msg.Err != nil {
			delete(m.Stats, msg.Name)
			break
		}
		m.Stats[msg.Name] = msg.Stats

	case model.ProcessActionMsg:
		if msg.Err != nil {
			logging.Error("TUI", msg.Err, "Failed to %s %s", msg.Action, msg.Name)
			cmds = append(cmds, m.SetStatusMessage(fmt.Sprintf("Failed to %s %s", msg.Action, msg.Name), model.StatusBarError, statusTimeout))
			break
		}
		verb := map[string]string{"start": "Started", "restart": "Restarted", "kill": "Stopped"}[msg.Action]
		cmds = append(cmds, m.SetStatusMessage(fmt.Sprintf("%s %s", verb, msg.Name), model.StatusBarSuccess, statusTimeout))

	case model.DocsRenderedMsg:
		if msg.Err != nil {
			logging.Error("TUI", msg.Err, "Failed to render docs of %s", msg.Name)
			cmds = append(cmds, m.SetStatusMessage(fmt.Sprintf("Failed to render docs of %s", msg.Name), model.StatusBarError, statusTimeout))
			break
		}
		width, height := 0, 0
		if m.Layout != nil {
			width, height = m.Layout.Text.Size()
		}
		if width != msg.Width {
			// Rendered for a previous size; a newer render is on its way.
			break
		}
		content := strings.TrimRight(msg.Rendered, "\n")
		m.Docs[msg.Name] = scroll.New(scroll.Entries{{ID: msg.Name, Content: content}}, width, height)
		m.DocsWidth = width

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.TakePending()...)
	if m.QuitApp {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

// handleFilterKey feeds a keystroke to the filter input. Enter keeps the
// filter, escape drops it.
func handleFilterKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Esc):
		m.Filtering = false
		m.Filter.Blur()
		m.Filter.SetValue("")
		rebuild(m)
		return nil
	case msg.Type == tea.KeyEnter:
		m.Filtering = false
		m.Filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	rebuild(m)
	return cmd
}

// drainUpdates collects every pending update notification so a burst of
// output costs one frame.
func drainUpdates(m *model.Model, first string) map[string]struct{} {
	names := map[string]struct{}{first: {}}
	updates := m.Store.Updates()
	for {
		select {
		case name := <-updates:
			names[name] = struct{}{}
		default:
			return names
		}
	}
}
