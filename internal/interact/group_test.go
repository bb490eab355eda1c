package interact

import (
	"procdeck/internal/layout"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tab      = Key{Tab: true}
	shiftTab = Key{Tab: true, Shift: true}
)

// focusables connects one focusable per box, in the given order.
func focusables(t *testing.T, w *Window, boxes ...*layout.Box) []*Node {
	t.Helper()
	nodes := make([]*Node, len(boxes))
	for i, b := range boxes {
		nodes[i] = w.NewFocusable(b)
		require.NoError(t, nodes[i].Connect())
	}
	return nodes
}

func rows(parent *layout.Box, prefix string, count int) []*layout.Box {
	boxes := make([]*layout.Box, count)
	for i := range boxes {
		boxes[i] = child(parent, prefix, layout.Row, 10, 1)
	}
	return boxes
}

func press(w *Window, key Key) {
	w.DispatchInput("", key)
}

func TestWindowFocusAndBlur(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	nodes := focusables(t, w, rows(screen, "item", 2)...)
	a, b := nodes[0], nodes[1]

	var events []string
	for name, n := range map[string]*Node{"a": a, "b": b} {
		n.AddListener(EventFocus, func(e *Event) {
			events = append(events, name+":focus")
		})
		n.AddListener(EventBlur, func(e *Event) {
			assert.Equal(t, e.Target, w.Active())
			events = append(events, name+":blur")
		})
	}

	assert.False(t, w.HasFocus())
	a.Focus()
	a.Focus()
	b.Focus()
	assert.Equal(t, b, w.Active())

	a.Blur()
	assert.Equal(t, b, w.Active())
	b.Blur()
	assert.Equal(t, w.Root(), w.Active())
	assert.Equal(t, []string{"a:focus", "a:blur", "b:focus", "b:blur"}, events)
}

func TestWindowTabUsesColumnMajorOrder(t *testing.T) {
	w := NewWindow()
	screen := layout.NewBox("screen", layout.Row).SetSize(80, 24)
	left := child(screen, "left", layout.Column, 10, 24)
	right := child(screen, "right", layout.Column, 10, 24)
	r := focusables(t, w, rows(right, "r", 1)...)[0]
	lefts := focusables(t, w, rows(left, "l", 2)...)

	assert.Equal(t, []*Node{lefts[0], lefts[1], r}, w.FocusManager().Focusables())

	press(w, tab)
	assert.Equal(t, lefts[0], w.Active())
	w.FocusNext()
	assert.Equal(t, lefts[1], w.Active())
	w.FocusNext()
	assert.Equal(t, r, w.Active())
	w.FocusNext()
	assert.Equal(t, lefts[0], w.Active())
	w.FocusPrevious()
	assert.Equal(t, r, w.Active())

	r.Blur()
	press(w, shiftTab)
	assert.Equal(t, r, w.Active())
}

func TestWindowTabIgnoredWhileFocused(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	items := focusables(t, w, rows(screen, "item", 2)...)

	items[0].Focus()
	press(w, tab)
	assert.Equal(t, items[0], w.Active())
	press(w, shiftTab)
	assert.Equal(t, items[0], w.Active())
}

func TestFocusManagerIsNoopWithoutFocusables(t *testing.T) {
	w := NewWindow()
	assert.False(t, w.FocusNext())
	assert.False(t, w.FocusPrevious())
	assert.False(t, w.HasFocus())
}

func TestClickFocusesFocusable(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	items := focusables(t, w, rows(screen, "item", 2)...)

	w.DispatchMouse(EventMouseDown, 3, 1, ButtonLeft)
	w.DispatchMouse(EventMouseUp, 3, 1, ButtonLeft)
	assert.Equal(t, items[1], w.Active())

	w.DispatchMouse(EventMouseDown, 3, 0, ButtonLeft)
	w.DispatchMouse(EventMouseUp, 4, 0, ButtonLeft)
	assert.Equal(t, items[1], w.Active())
}

func TestHoverEmitsEnterAndLeave(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	boxes := rows(screen, "item", 2)
	a := w.NewNode(boxes[0])
	b := w.NewNode(boxes[1])
	require.NoError(t, a.Connect())
	require.NoError(t, b.Connect())

	var events []string
	a.AddListener(EventMouseEnter, func(*Event) { events = append(events, "a:enter") })
	a.AddListener(EventMouseLeave, func(*Event) { events = append(events, "a:leave") })
	b.AddListener(EventMouseEnter, func(*Event) { events = append(events, "b:enter") })

	w.DispatchMouse(EventMouseMove, 1, 0, ButtonNone)
	w.DispatchMouse(EventMouseMove, 2, 0, ButtonNone)
	w.DispatchMouse(EventMouseMove, 2, 1, ButtonNone)

	assert.Equal(t, []string{"a:enter", "a:leave", "b:enter"}, events)
	assert.Equal(t, b, w.Hovered())
	assert.Equal(t, w.Root(), w.NodeAt(50, 20))
}

func TestGroupFocusesFirstChildOnConnect(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 3)
	items := focusables(t, w, rows(groupBox, "item", 3)...)

	g := w.NewGroup(groupBox)
	require.NoError(t, g.Connect())

	assert.Equal(t, items[0], w.Active())
	assert.True(t, g.Active())
	assert.Equal(t, items, g.FocusableChildren())
}

func TestGroupAdoptsFocusedDescendantOnConnect(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 3)
	items := focusables(t, w, rows(groupBox, "item", 3)...)
	items[2].Focus()

	g := w.NewGroup(groupBox)
	require.NoError(t, g.Connect())

	assert.Equal(t, items[2], w.Active())
	assert.True(t, g.Active())
	assert.Equal(t, 2, g.CurrentIndex())
}

func TestTabMovesBetweenSiblingGroups(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	firstBox := child(screen, "first", layout.Column, 10, 2)
	secondBox := child(screen, "second", layout.Column, 10, 2)
	first := focusables(t, w, rows(firstBox, "a", 2)...)
	second := focusables(t, w, rows(secondBox, "b", 2)...)
	g1 := w.NewGroup(firstBox)
	g2 := w.NewGroup(secondBox)
	require.NoError(t, g1.Connect())
	require.NoError(t, g2.Connect())
	require.Equal(t, first[0], w.Active())

	press(w, tab)
	assert.Equal(t, first[1], w.Active())

	press(w, tab)
	assert.Equal(t, second[0], w.Active())
	assert.False(t, g1.Active())
	assert.True(t, g2.Active())

	press(w, shiftTab)
	assert.Equal(t, first[1], w.Active())
	assert.True(t, g1.Active())
	assert.False(t, g2.Active())
}

func TestTabCyclesThroughSingleGroup(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 4)
	items := focusables(t, w, rows(groupBox, "item", 4)...)
	g := w.NewGroup(groupBox)
	require.NoError(t, g.Connect())

	var visited []*Node
	for range items {
		press(w, tab)
		visited = append(visited, w.Active())
	}

	assert.Equal(t, []*Node{items[1], items[2], items[3], items[0]}, visited)
	assert.True(t, g.Active())
}

func TestTabSkipsEmptyGroup(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	firstBox := child(screen, "first", layout.Column, 10, 1)
	emptyBox := child(screen, "empty", layout.Column, 10, 1)
	child(emptyBox, "label", layout.Row, 10, 1)
	lastBox := child(screen, "last", layout.Column, 10, 1)
	first := focusables(t, w, rows(firstBox, "a", 1)...)
	last := focusables(t, w, rows(lastBox, "c", 1)...)

	for _, b := range []*layout.Box{firstBox, emptyBox, lastBox} {
		require.NoError(t, w.NewGroup(b).Connect())
	}
	require.Equal(t, first[0], w.Active())

	press(w, tab)
	assert.Equal(t, last[0], w.Active())
	press(w, tab)
	assert.Equal(t, first[0], w.Active())
}

func TestVerticalListFollowsLayoutOrder(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	listBox := child(screen, "list", layout.ColumnReverse, 10, 3)
	declared := focusables(t, w, rows(listBox, "item", 3)...)

	list := w.NewGroup(listBox, AsList(Vertical))
	require.NoError(t, list.Connect())

	top := []*Node{declared[2], declared[1], declared[0]}
	assert.Equal(t, top, list.FocusableChildren())
	assert.Equal(t, top[0], w.Active())

	var visited []*Node
	for range top {
		press(w, tab)
		visited = append(visited, w.Active())
	}
	assert.Equal(t, []*Node{top[1], top[2], top[0]}, visited)
}

func TestListArrowsStayInsideGroup(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	listBox := child(screen, "list", layout.Column, 10, 2)
	otherBox := child(screen, "other", layout.Column, 10, 1)
	items := focusables(t, w, rows(listBox, "item", 2)...)
	focusables(t, w, rows(otherBox, "other", 1)...)

	list := w.NewGroup(listBox, AsList(Vertical))
	require.NoError(t, list.Connect())
	require.NoError(t, w.NewGroup(otherBox).Connect())

	var reachedRoot int
	w.Root().AddListener(EventInput, func(*Event) { reachedRoot++ })

	press(w, Key{Down: true})
	assert.Equal(t, items[1], w.Active())
	press(w, Key{Down: true})
	assert.Equal(t, items[0], w.Active())
	press(w, Key{Up: true})
	assert.Equal(t, items[1], w.Active())
	assert.Zero(t, reachedRoot)

	press(w, Key{Down: true, Shift: true})
	assert.Equal(t, items[1], w.Active())
	assert.Equal(t, 1, reachedRoot)
}

func TestHorizontalListUsesLeftRight(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	listBox := child(screen, "list", layout.Row, 30, 1)
	items := focusables(t, w,
		child(listBox, "a", layout.Row, 10, 1),
		child(listBox, "b", layout.Row, 10, 1),
	)
	list := w.NewGroup(listBox, AsList(Horizontal))
	require.NoError(t, list.Connect())

	press(w, Key{Right: true})
	assert.Equal(t, items[1], w.Active())
	press(w, Key{Down: true})
	assert.Equal(t, items[1], w.Active())
	press(w, Key{Left: true})
	assert.Equal(t, items[0], w.Active())
}

func TestGroupDeactivatesOnlyWhenFocusLeaves(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 2)
	items := focusables(t, w, rows(groupBox, "item", 2)...)
	outside := focusables(t, w, rows(screen, "outside", 1)...)[0]
	g := w.NewGroup(groupBox)
	require.NoError(t, g.Connect())

	items[1].Focus()
	assert.True(t, g.Active())
	assert.Equal(t, 1, g.CurrentIndex())

	outside.Focus()
	assert.False(t, g.Active())

	items[0].Focus()
	assert.True(t, g.Active())
	items[0].Blur()
	assert.False(t, g.Active())
}

func TestGroupStaysActiveWhileFocusMovesInside(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 2)
	items := focusables(t, w, rows(groupBox, "item", 2)...)
	outside := focusables(t, w, rows(screen, "outside", 1)...)[0]
	g := w.NewGroup(groupBox)
	require.NoError(t, g.Connect())
	require.True(t, g.Active())

	var seen []string
	record := func(when string) {
		if g.Active() {
			seen = append(seen, when+":active")
		} else {
			seen = append(seen, when+":inactive")
		}
	}
	for _, n := range []*Node{items[0], items[1]} {
		n.AddListener(EventBlur, func(*Event) {
			record("blur")
			w.Defer(func() { record("settled") })
		})
		n.AddListener(EventFocus, func(*Event) { record("focus") })
	}

	items[1].Focus()
	assert.Equal(t, []string{"blur:active", "focus:active", "settled:active"}, seen)

	seen = nil
	outside.Focus()
	assert.Equal(t, []string{"blur:active", "settled:inactive"}, seen)
}

func TestNestedGroupsNavigateDepthFirst(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	parentBox := child(screen, "parent", layout.Column, 20, 6)
	ownBox := child(parentBox, "own", layout.Column, 20, 1)
	innerBox := child(parentBox, "inner", layout.Column, 20, 2)
	siblingBox := child(screen, "sibling", layout.Column, 20, 1)

	own := focusables(t, w, rows(ownBox, "p", 1)...)
	inner := focusables(t, w, rows(innerBox, "i", 2)...)
	sibling := focusables(t, w, rows(siblingBox, "s", 1)...)

	innerGroup := w.NewGroup(innerBox)
	require.NoError(t, innerGroup.Connect())
	require.Equal(t, inner[0], w.Active())
	w.Blur(inner[0])

	parent := w.NewGroup(parentBox)
	require.NoError(t, parent.Connect())
	require.NoError(t, w.NewGroup(siblingBox).Connect())
	require.Equal(t, own[0], w.Active())
	assert.Equal(t, own, parent.FocusableChildren())

	press(w, tab)
	assert.Equal(t, inner[0], w.Active())
	press(w, tab)
	assert.Equal(t, inner[1], w.Active())
	press(w, tab)
	assert.Equal(t, sibling[0], w.Active())

	press(w, shiftTab)
	assert.Equal(t, inner[1], w.Active())
	press(w, shiftTab)
	assert.Equal(t, inner[0], w.Active())
	press(w, shiftTab)
	assert.Equal(t, own[0], w.Active())
	assert.True(t, parent.Active())
	assert.False(t, innerGroup.Active())
}

func TestShiftTabAtFirstRootGroupDeactivates(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 2)
	items := focusables(t, w, rows(groupBox, "item", 2)...)
	g := w.NewGroup(groupBox, AsList(Vertical))
	require.NoError(t, g.Connect())

	press(w, shiftTab)
	assert.Equal(t, items[0], w.Active())
	assert.False(t, g.Active())

	press(w, shiftTab)
	assert.Equal(t, items[0], w.Active())
	assert.False(t, g.Active())
}

func TestDisconnectedGroupStopsHandlingKeys(t *testing.T) {
	w := NewWindow()
	screen := newScreen()
	groupBox := child(screen, "group", layout.Column, 10, 2)
	focusables(t, w, rows(groupBox, "item", 2)...)
	g := w.NewGroup(groupBox)
	require.NoError(t, g.Connect())

	g.Disconnect()

	assert.False(t, g.Active())
	assert.False(t, g.Node().Connected())
}
