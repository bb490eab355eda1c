package controller

import (
	"context"
	"procdeck/internal/process"
	"procdeck/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the dashboard program over store.
func NewProgram(ctx context.Context, store *process.Store, cfg model.TUIConfig) *tea.Program {
	m := model.InitializeModel(ctx, store, cfg)
	app := NewAppModel(m)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	return tea.NewProgram(app, opts...)
}
