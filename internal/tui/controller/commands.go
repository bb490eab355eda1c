package controller

import (
	"context"
	"fmt"
	"procdeck/internal/process"
	"procdeck/internal/tui/model"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const statsInterval = 2 * time.Second

// waitForUpdate blocks until a process changes.
func waitForUpdate(m *model.Model) tea.Cmd {
	updates := m.Store.Updates()
	ctx := m.Ctx
	return func() tea.Msg {
		select {
		case name := <-updates:
			return model.ProcessUpdateMsg{Name: name}
		case <-ctx.Done():
			return nil
		}
	}
}

func statsTick() tea.Cmd {
	return tea.Tick(statsInterval, func(time.Time) tea.Msg {
		return model.StatsTickMsg{}
	})
}

func sampleStats(p *process.Process) tea.Cmd {
	return func() tea.Msg {
		stats, err := p.Stats()
		return model.StatsMsg{Name: p.Name(), Stats: stats, Err: err}
	}
}

func restartProcess(ctx context.Context, p *process.Process) tea.Cmd {
	return func() tea.Msg {
		action := "start"
		if p.State().Alive() {
			action = "restart"
		}
		return model.ProcessActionMsg{Name: p.Name(), Action: action, Err: p.Restart(ctx)}
	}
}

func killProcess(p *process.Process) tea.Cmd {
	return func() tea.Msg {
		p.Kill()
		return model.ProcessActionMsg{Name: p.Name(), Action: "kill"}
	}
}

// renderDocs renders the process documentation as markdown wrapped at width.
func renderDocs(p *process.Process, width int) tea.Cmd {
	return func() tea.Msg {
		style := "light"
		if lipgloss.HasDarkBackground() {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return model.DocsRenderedMsg{Name: p.Name(), Width: width, Err: err}
		}
		out, err := r.Render(p.Docs())
		if err != nil {
			err = fmt.Errorf("failed to render docs of %s: %w", p.Name(), err)
		}
		return model.DocsRenderedMsg{Name: p.Name(), Width: width, Rendered: out, Err: err}
	}
}
