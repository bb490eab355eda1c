package controller

import (
	"context"
	"fmt"
	"procdeck/internal/process"
	"procdeck/internal/tui/model"
	"procdeck/internal/tui/view"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, scripts ...process.Script) (*model.Model, *recordingClipboard) {
	t.Helper()
	store := process.NewStore("sh", scripts...)
	clip := &recordingClipboard{}
	m := model.InitializeModel(context.Background(), store, model.TUIConfig{Mouse: true, Clipboard: clip})
	return m, clip
}

func sized(t *testing.T, m *model.Model, width, height int) {
	t.Helper()
	Update(tea.WindowSizeMsg{Width: width, Height: height}, m)
	require.NotNil(t, m.Layout)
	require.NotNil(t, m.Window)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func services() []process.Script {
	return []process.Script{
		{Name: "web", Command: "serve web", Type: process.TypeService},
		{Name: "api", Command: "serve api", Type: process.TypeService},
		{Name: "build", Command: "make", Type: process.TypeTask},
	}
}

func TestSidebarGroups(t *testing.T) {
	m, _ := newTestModel(t, services()...)

	groups := sidebarGroups(m)
	require.Len(t, groups, 2)
	assert.Equal(t, "Services", groups[0].Title)
	assert.Equal(t, []string{"api", "web"}, groups[0].Names)
	assert.Equal(t, []string{"build"}, groups[1].Names)

	m.Filter.SetValue("bld")
	groups = sidebarGroups(m)
	require.Len(t, groups, 1)
	assert.Equal(t, "Tasks", groups[0].Title)
	assert.Equal(t, []string{"build"}, groups[0].Names)
}

func TestResizeFocusesSelectedProcess(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	assert.Equal(t, "api", m.Selected)
	assert.Same(t, m.ItemNodes["api"], m.Window.Active())
	assert.Len(t, m.Layout.Sections, 2)
}

func TestRebuildIsSkippedForSameSignature(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)
	w := m.Window

	rebuild(m)
	assert.Same(t, w, m.Window)

	Update(tea.WindowSizeMsg{Width: 100, Height: 24}, m)
	assert.NotSame(t, w, m.Window)
}

func TestArrowKeysMoveWithinSection(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	Update(tea.KeyMsg{Type: tea.KeyDown}, m)
	assert.Equal(t, "web", m.Selected)

	// Lists wrap around.
	Update(tea.KeyMsg{Type: tea.KeyDown}, m)
	assert.Equal(t, "api", m.Selected)

	Update(tea.KeyMsg{Type: tea.KeyUp}, m)
	assert.Equal(t, "web", m.Selected)
}

func TestTabLeavesSectionFromLastItem(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	Update(tea.KeyMsg{Type: tea.KeyTab}, m)
	assert.Equal(t, "web", m.Selected)

	Update(tea.KeyMsg{Type: tea.KeyTab}, m)
	assert.Equal(t, "build", m.Selected)
	assert.Same(t, m.ItemNodes["build"], m.Window.Active())

	Update(tea.KeyMsg{Type: tea.KeyShiftTab}, m)
	assert.Same(t, m.ItemNodes["web"], m.Window.Active())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	_, cmd := Update(runes("q"), m)
	assert.True(t, m.QuitApp)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFilterFlow(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	Update(runes("/"), m)
	require.True(t, m.Filtering)

	Update(runes("b"), m)
	assert.Equal(t, "b", m.Filter.Value())
	require.Len(t, m.Layout.Sections, 2)
	assert.Equal(t, []string{"web"}, m.Layout.Sections[0].Names)
	assert.Equal(t, []string{"build"}, m.Layout.Sections[1].Names)

	Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	assert.False(t, m.Filtering)
	assert.Equal(t, "b", m.Filter.Value())

	// Outside filter mode escape drops the filter.
	Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.Empty(t, m.Filter.Value())
	assert.Len(t, m.Layout.Sections[0].Names, 2)
}

func TestFilterEscapeCancels(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	Update(runes("/"), m)
	Update(runes("x"), m)
	require.Empty(t, m.Layout.Sections)

	Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.False(t, m.Filtering)
	assert.Empty(t, m.Filter.Value())
	assert.Len(t, m.Layout.Sections, 2)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	Update(runes("?"), m)
	assert.True(t, m.Help.ShowAll)
	Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.False(t, m.Help.ShowAll)
}

func TestDocsWithoutDocs(t *testing.T) {
	m, _ := newTestModel(t, services()...)
	sized(t, m, 80, 24)

	_, cmd := Update(runes("d"), m)
	assert.False(t, m.ShowDocs)
	assert.NotNil(t, cmd)
	assert.Equal(t, "api has no docs", m.StatusBarMessage)
	assert.Equal(t, model.StatusBarWarning, m.StatusBarMessageType)
}

func TestDocsToggleQueuesRender(t *testing.T) {
	m, _ := newTestModel(t, process.Script{Name: "api", Command: "serve", Type: process.TypeService, Docs: "# API"})
	sized(t, m, 80, 24)

	_, cmd := Update(runes("d"), m)
	assert.True(t, m.ShowDocs)
	assert.NotNil(t, cmd)

	width, height := m.Layout.Text.Size()
	Update(model.DocsRenderedMsg{Name: "api", Width: width, Rendered: "API\nline\n"}, m)
	require.Contains(t, m.Docs, "api")
	assert.Equal(t, height, m.Docs["api"].Height())
	assert.Same(t, m.Docs["api"], m.ActiveViewport())
	assert.Nil(t, docsFor(m))

	// A render for a stale width is dropped.
	delete(m.Docs, "api")
	Update(model.DocsRenderedMsg{Name: "api", Width: width + 1, Rendered: "API"}, m)
	assert.NotContains(t, m.Docs, "api")
}

func logModel(t *testing.T, lines int) (*model.Model, *process.Process, *recordingClipboard) {
	t.Helper()
	m, clip := newTestModel(t)
	logs := process.NewLogProcess()
	m.Store.AddProcess(logs)
	for i := range lines {
		logs.Append(fmt.Sprintf("line %02d", i), process.Stdout)
	}
	m.Selected = logs.Name()
	sized(t, m, 60, 20)
	return m, logs, clip
}

func TestOutputFollowsTail(t *testing.T) {
	m, logs, _ := logModel(t, 30)
	vp := m.ActiveViewport()
	require.NotNil(t, vp)
	assert.True(t, vp.Tracking())
	assert.Equal(t, 30-vp.Height(), vp.Offset())

	logs.Append("line 30", process.Stdout)
	Update(model.ProcessUpdateMsg{Name: logs.Name()}, m)
	assert.Equal(t, 31-vp.Height(), vp.Offset())
}

func TestScrollKeys(t *testing.T) {
	m, _, _ := logModel(t, 30)
	vp := m.ActiveViewport()
	bottom := 30 - vp.Height()

	Update(runes("k"), m)
	assert.False(t, vp.Tracking())
	assert.Equal(t, bottom-1, vp.Offset())

	Update(runes("g"), m)
	assert.Equal(t, 0, vp.Offset())

	// Scrolling above the top is clamped.
	Update(runes("k"), m)
	assert.Equal(t, 0, vp.Offset())

	Update(runes("G"), m)
	assert.True(t, vp.Tracking())
	assert.Equal(t, bottom, vp.Offset())

	Update(runes("k"), m)
	Update(runes("j"), m)
	assert.True(t, vp.Tracking(), "reaching the bottom resumes following")
}

func TestMouseWheelScrollsOutput(t *testing.T) {
	m, _, _ := logModel(t, 30)
	vp := m.ActiveViewport()
	text := m.Layout.Text.Bounds()

	Update(tea.MouseMsg{X: text.X + 1, Y: text.Y + 1, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, m)
	assert.False(t, vp.Tracking())
	assert.Equal(t, 30-vp.Height()-1, vp.Offset())

	Update(tea.MouseMsg{X: text.X + 1, Y: text.Y + 1, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, m)
	assert.True(t, vp.Tracking())
}

func TestDragSelectAndCopy(t *testing.T) {
	m, _, clip := logModel(t, 30)
	text := m.Layout.Text.Bounds()

	Update(tea.MouseMsg{X: text.X, Y: text.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, m)
	Update(tea.MouseMsg{X: text.X + 3, Y: text.Y + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, m)
	Update(tea.MouseMsg{X: text.X + 3, Y: text.Y + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, m)

	r, ok := m.Selections.Get(model.OutputSelectionID)
	require.True(t, ok)
	assert.Len(t, r.Rows, 2)

	m.LastFrame = view.Render(m)
	Update(runes("c"), m)
	assert.Equal(t, "line 12\nline", clip.text)
	assert.Equal(t, "Copied 2 lines", m.StatusBarMessage)

	Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.False(t, m.Selections.HasSelections())
}

func TestCopyWithoutSelection(t *testing.T) {
	m, _, clip := logModel(t, 3)
	m.LastFrame = view.Render(m)

	Update(runes("c"), m)
	assert.Empty(t, clip.text)
	assert.Equal(t, "Nothing selected", m.StatusBarMessage)
}

func TestSelectionSurvivesRebuild(t *testing.T) {
	m, _, _ := logModel(t, 30)
	text := m.Layout.Text.Bounds()

	Update(tea.MouseMsg{X: text.X, Y: text.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, m)
	Update(tea.MouseMsg{X: text.X + 3, Y: text.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, m)
	Update(tea.MouseMsg{X: text.X + 3, Y: text.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, m)
	require.True(t, m.Selections.HasSelections())

	Update(tea.WindowSizeMsg{Width: 70, Height: 20}, m)
	assert.True(t, m.Selections.HasSelections())
}

func TestProcessActionStatus(t *testing.T) {
	m, _ := newTestModel(t, services()...)

	Update(model.ProcessActionMsg{Name: "api", Action: "restart"}, m)
	assert.Equal(t, "Restarted api", m.StatusBarMessage)
	assert.Equal(t, model.StatusBarSuccess, m.StatusBarMessageType)

	Update(model.ProcessActionMsg{Name: "api", Action: "start", Err: assert.AnError}, m)
	assert.Equal(t, "Failed to start api", m.StatusBarMessage)
	assert.Equal(t, model.StatusBarError, m.StatusBarMessageType)

	Update(model.ClearStatusBarMsg{}, m)
	assert.Empty(t, m.StatusBarMessage)
}

func TestStatsMsg(t *testing.T) {
	m, _ := newTestModel(t, services()...)

	Update(model.StatsMsg{Name: "api", Stats: process.Stats{CPU: 1.5, RSS: 2048}}, m)
	assert.Equal(t, 1.5, m.Stats["api"].CPU)

	Update(model.StatsMsg{Name: "api", Err: assert.AnError}, m)
	assert.NotContains(t, m.Stats, "api")
}

func TestToInteractKey(t *testing.T) {
	input, k := toInteractKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "shift+tab", input)
	assert.True(t, k.Tab)
	assert.True(t, k.Shift)

	_, k = toInteractKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, k.Down)
	assert.False(t, k.Modified())

	input, k = toInteractKey(runes("x"))
	assert.Equal(t, "x", input)
	assert.False(t, k.Modified())

	_, k = toInteractKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, k.Ctrl)
}
