package model

import (
	"context"
	"procdeck/internal/interact"
	"procdeck/internal/process"
	"procdeck/internal/scroll"
	"procdeck/internal/selection"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// OutputSelectionID is the selection id of the output pane.
const OutputSelectionID = "output"

// Model is the state of the dashboard.
type Model struct {
	// Terminal dimensions
	Width  int
	Height int

	Ctx   context.Context
	Store *process.Store

	// Selected names the process shown in the output pane.
	Selected string

	// UI state
	QuitApp   bool
	ShowDocs  bool
	Mouse     bool
	DebugMode bool
	Filtering bool
	Filter    textinput.Model
	Keys      KeyMap
	Help      help.Model
	Spinner   spinner.Model

	// Output viewports keyed by process name
	Outputs map[string]*scroll.Scrollable
	// Rendered documentation keyed by process name
	Docs      map[string]*scroll.Scrollable
	DocsWidth int
	Stats     map[string]process.Stats

	Selections *selection.Store
	Clipboard  selection.Clipboard

	// Interaction tree of the current layout
	Window     *interact.Window
	Layout     *Layout
	Signature  string
	Selectable *selection.Selectable
	ItemNodes  map[string]*interact.Node
	OutputNode *interact.Node

	// LastKey is the keystroke being dispatched.
	LastKey tea.KeyMsg

	// LastFrame is the most recently rendered screen.
	LastFrame string

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	// Pending collects commands queued by interaction listeners during an
	// update.
	Pending []tea.Cmd
}

// SelectedProcess returns the process shown in the output pane.
func (m *Model) SelectedProcess() *process.Process {
	if m.Selected == "" {
		return nil
	}
	p, err := m.Store.Get(m.Selected)
	if err != nil {
		return nil
	}
	return p
}

// Queue schedules cmd to run after the current update.
func (m *Model) Queue(cmd tea.Cmd) {
	if cmd != nil {
		m.Pending = append(m.Pending, cmd)
	}
}

// TakePending returns and clears the queued commands.
func (m *Model) TakePending() []tea.Cmd {
	cmds := m.Pending
	m.Pending = nil
	return cmds
}

// Output returns the viewport of the named process, creating it on first use.
func (m *Model) Output(name string) *scroll.Scrollable {
	if s, ok := m.Outputs[name]; ok {
		return s
	}
	p, err := m.Store.Get(name)
	if err != nil {
		return nil
	}
	w, h := m.paneSize()
	s := scroll.New(ProcessSource{Process: p}, w, h)
	s.Track()
	m.Outputs[name] = s
	return s
}

// ActiveViewport returns the viewport the output pane currently shows.
func (m *Model) ActiveViewport() *scroll.Scrollable {
	if m.ShowDocs {
		if s, ok := m.Docs[m.Selected]; ok {
			return s
		}
	}
	return m.Output(m.Selected)
}

// paneSize returns the text area of the output pane.
func (m *Model) paneSize() (int, int) {
	if m.Layout == nil {
		return 0, 0
	}
	w, h := m.Layout.Text.Size()
	return w, h
}

// ResizeViewports applies the current pane size to every viewport.
func (m *Model) ResizeViewports() {
	w, h := m.paneSize()
	for _, s := range m.Outputs {
		s.SetDimensions(w, h)
	}
	for _, s := range m.Docs {
		s.SetDimensions(w, h)
	}
}

// SetStatusMessage shows message in the status bar and clears it after
// clearAfter unless another message replaced it.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}
