package model

import (
	"context"
	"procdeck/internal/interact"
	"procdeck/internal/process"
	"procdeck/internal/scroll"
	"procdeck/internal/selection"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TUIConfig carries what the dashboard needs from the command line.
type TUIConfig struct {
	Mouse     bool
	DebugMode bool
	Clipboard selection.Clipboard
}

// InitializeModel creates the dashboard model over store. The first sorted
// process is selected.
func InitializeModel(ctx context.Context, store *process.Store, cfg TUIConfig) *Model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter processes"
	filter.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	clip := cfg.Clipboard
	if clip == nil {
		clip = selection.SystemClipboard{}
	}

	m := &Model{
		Ctx:        ctx,
		Store:      store,
		Mouse:      cfg.Mouse,
		DebugMode:  cfg.DebugMode,
		Filter:     filter,
		Keys:       DefaultKeyMap(),
		Help:       help.New(),
		Spinner:    s,
		Outputs:    make(map[string]*scroll.Scrollable),
		Docs:       make(map[string]*scroll.Scrollable),
		Stats:      make(map[string]process.Stats),
		Selections: selection.NewStore(),
		Clipboard:  clip,
		ItemNodes:  make(map[string]*interact.Node),
	}
	if first := store.First(); first != nil {
		m.Selected = first.Name()
	}
	return m
}

// Init returns the commands that run when the program starts.
func (m *Model) Init() tea.Cmd {
	return m.Spinner.Tick
}
