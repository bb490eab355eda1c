package view

import (
	"fmt"
	"procdeck/internal/process"
	"procdeck/internal/tui/design"
	"procdeck/internal/tui/model"
	"time"
)

func renderHeader(m *model.Model, width int) string {
	p := m.SelectedProcess()
	if p == nil {
		return design.HeaderStyle.Render(fit(" procdeck", width))
	}

	state := p.State()
	left := " "
	if state == process.StateStarting || state == process.StateClosing {
		left += m.Spinner.View() + " "
	}
	left += p.Name() + " " + design.GetBadgeStyle(state, p.ExitCode()).Render(badgeText(p))
	if cmd := p.Command(); cmd != "" {
		left += " " + design.DimStyle.Render(cmd)
	}

	right := ""
	if state.Alive() {
		right = FormatUptime(time.Since(p.RunningSince()))
		if stats, ok := m.Stats[p.Name()]; ok {
			right = fmt.Sprintf("cpu %.1f%%  mem %s  %s", stats.CPU, process.FormatBytes(stats.RSS), right)
		}
	}
	right += " "

	space := width - visibleWidth(left) - visibleWidth(right)
	if space < 1 {
		return design.HeaderStyle.Render(fit(left, width))
	}
	return design.HeaderStyle.Render(left + fit("", space) + right)
}

func badgeText(p *process.Process) string {
	state := p.State()
	if state == process.StateClosed && p.ExitCode() != 0 {
		return fmt.Sprintf("exited %d", p.ExitCode())
	}
	if state == process.StateClosed && p.RunningSince().IsZero() {
		return "idle"
	}
	return state.String()
}

// FormatUptime renders a duration as its two largest units.
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, mins)
	case mins > 0:
		return fmt.Sprintf("%dm%02ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
