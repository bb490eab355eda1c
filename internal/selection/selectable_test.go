package selection

import (
	"procdeck/internal/interact"
	"procdeck/internal/layout"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegion(t *testing.T) (*interact.Window, *Selectable, *Store) {
	t.Helper()
	w := interact.NewWindow()
	screen := layout.NewBox("screen", layout.Column).SetSize(40, 10)
	box := layout.NewBox("output", layout.Column).SetSize(10, 3)
	screen.Add(box)

	store := NewStore()
	s := NewSelectable(w, box, store, "output")
	require.NoError(t, s.Connect())
	return w, s, store
}

func TestSelectableDrag(t *testing.T) {
	w, s, _ := newRegion(t)
	assert.Equal(t, layout.Rect{Width: 10, Height: 3}, s.Box())

	w.DispatchMouse(interact.EventMouseDown, 2, 0, interact.ButtonLeft)
	_, ok := s.Range()
	assert.False(t, ok)

	w.DispatchMouse(interact.EventMouseMove, 3, 1, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseMove, 5, 2, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseUp, 5, 2, interact.ButtonLeft)

	r, ok := s.Range()
	require.True(t, ok)
	assert.Equal(t, []Segment{
		{Row: 0, Start: 2, End: 9},
		{Row: 1, Start: 0, End: 9},
		{Row: 2, Start: 0, End: 5},
	}, r.Rows)

	// The drag has ended; later moves leave the selection alone.
	w.DispatchMouse(interact.EventMouseMove, 0, 0, interact.ButtonNone)
	after, _ := s.Range()
	assert.Equal(t, r, after)
}

func TestSelectableDragOutsideRegion(t *testing.T) {
	w, s, _ := newRegion(t)

	w.DispatchMouse(interact.EventMouseDown, 4, 1, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseMove, 1, 0, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseMove, 30, 8, interact.ButtonLeft)

	r, ok := s.Range()
	require.True(t, ok)
	assert.Equal(t, Point{X: 4, Y: 1}, r.Start)
	assert.Equal(t, []Segment{
		{Row: 1, Start: 4, End: 9},
		{Row: 2, Start: 0, End: 9},
	}, r.Rows)
}

func TestSelectableClickClears(t *testing.T) {
	w, s, store := newRegion(t)
	store.Set("output", Point{X: 0, Y: 0}, Point{X: 3, Y: 0}, s.Box())

	w.DispatchMouse(interact.EventMouseDown, 1, 1, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseMove, 1, 1, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseUp, 1, 1, interact.ButtonLeft)

	_, ok := s.Range()
	assert.False(t, ok)
}

func TestSelectableIgnoresOtherButtons(t *testing.T) {
	w, s, _ := newRegion(t)

	w.DispatchMouse(interact.EventMouseDown, 2, 0, interact.ButtonRight)
	w.DispatchMouse(interact.EventMouseMove, 5, 2, interact.ButtonRight)

	_, ok := s.Range()
	assert.False(t, ok)
}

func TestSelectableDisconnectDropsSelection(t *testing.T) {
	w, s, store := newRegion(t)
	w.DispatchMouse(interact.EventMouseDown, 2, 0, interact.ButtonLeft)
	w.DispatchMouse(interact.EventMouseMove, 5, 0, interact.ButtonLeft)
	require.True(t, store.HasSelections())

	s.Disconnect()
	assert.False(t, store.HasSelections())
}
