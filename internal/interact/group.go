package interact

import (
	"cmp"
	"context"
	"procdeck/internal/layout"
	"procdeck/pkg/logging"
	"slices"
)

// Orientation is the axis a list group moves along with arrow keys.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// GroupOption configures a focus group.
type GroupOption func(*Group)

// WithOrdering replaces the ordering strategy of the group's focusables.
func WithOrdering(o Ordering) GroupOption {
	return func(g *Group) {
		g.ordering = o
	}
}

// AsList makes the group a list: focusables are ordered by layout along
// orientation and arrow keys move within the group.
func AsList(orientation Orientation) GroupOption {
	return func(g *Group) {
		g.list = true
		g.orientation = orientation
		if orientation == Vertical {
			g.ordering = RowMajorOrder
		} else {
			g.ordering = ColumnMajorOrder
		}
	}
}

// Group scopes tab navigation to its own focusable descendants, stopping at
// nested groups. It is active while one of its focusables holds focus.
type Group struct {
	node        *Node
	ordering    Ordering
	list        bool
	orientation Orientation

	current      int
	active       bool
	activeCtx    context.Context
	activeCancel context.CancelFunc
}

// NewGroup creates an unconnected focus group bound to el.
func (w *Window) NewGroup(el layout.Element, opts ...GroupOption) *Group {
	g := &Group{ordering: TreeOrder}
	for _, opt := range opts {
		opt(g)
	}
	g.node = newNode(w, el)
	g.node.group = g
	return g
}

// Node returns the tree node carrying the group.
func (g *Group) Node() *Node { return g.node }

// Connect connects the group's node.
func (g *Group) Connect() error { return g.node.Connect() }

// Disconnect disconnects the group's node.
func (g *Group) Disconnect() { g.node.Disconnect() }

// Active reports whether the group currently handles navigation keys.
func (g *Group) Active() bool { return g.active }

// IsList reports whether the group moves with arrow keys.
func (g *Group) IsList() bool { return g.list }

// CurrentIndex returns the remembered position within FocusableChildren.
func (g *Group) CurrentIndex() int { return g.current }

// Current returns the remembered focusable, or nil when the group is empty.
func (g *Group) Current() *Node {
	nodes := g.FocusableChildren()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[min(max(g.current, 0), len(nodes)-1)]
}

// FocusableChildren returns the group's own focusables in navigation order.
// Focusables inside nested groups belong to those groups.
func (g *Group) FocusableChildren() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			switch {
			case c.focusable:
				out = append(out, c)
			case c.group == nil:
				walk(c)
			}
		}
	}
	walk(g.node)
	return g.ordering(out)
}

// FocusIndex focuses the focusable at index i.
func (g *Group) FocusIndex(i int) bool {
	nodes := g.FocusableChildren()
	if i < 0 || i >= len(nodes) {
		return false
	}
	g.current = i
	g.node.window.Focus(nodes[i])
	return true
}

// FocusNext focuses the next own focusable, wrapping around.
func (g *Group) FocusNext() bool {
	n := len(g.FocusableChildren())
	if n == 0 {
		return false
	}
	return g.FocusIndex((g.current + 1) % n)
}

// FocusPrevious focuses the previous own focusable, wrapping around.
func (g *Group) FocusPrevious() bool {
	n := len(g.FocusableChildren())
	if n == 0 {
		return false
	}
	return g.FocusIndex((g.current - 1 + n) % n)
}

func (g *Group) connect() {
	n := g.node
	n.AddListener(EventFocus, g.onFocus, WithCapture())
	n.AddListener(EventBlur, g.onBlur, WithCapture())

	w := n.window
	nodes := g.FocusableChildren()
	if i := slices.Index(nodes, w.active); i != -1 {
		g.current = i
		g.activate()
		return
	}
	if !w.HasFocus() && len(nodes) > 0 {
		w.Focus(nodes[0])
	}
}

func (g *Group) disconnect() {
	g.deactivate()
	g.current = 0
}

func (g *Group) onFocus(e *Event) {
	if i := slices.Index(g.FocusableChildren(), e.Target); i != -1 {
		g.current = i
		g.activate()
	}
}

// onBlur defers the check until the paired focus event has been applied.
func (g *Group) onBlur(*Event) {
	g.node.window.Defer(func() {
		if !g.holdsFocus() {
			g.deactivate()
		}
	})
}

func (g *Group) holdsFocus() bool {
	return slices.Contains(g.FocusableChildren(), g.node.window.active)
}

func (g *Group) activate() {
	if g.active {
		return
	}
	g.active = true
	g.activeCtx, g.activeCancel = context.WithCancel(g.node.ctx)
	g.node.AddListener(EventInput, g.onInput, WithContext(g.activeCtx))
	logging.Debug("Interact", "Activated group %s", g.node.id)
}

func (g *Group) deactivate() {
	if !g.active {
		return
	}
	g.active = false
	g.activeCancel()
	logging.Debug("Interact", "Deactivated group %s", g.node.id)
}

func (g *Group) onInput(e *Event) {
	if !g.active {
		return
	}
	key := e.Key
	if key.Tab {
		e.StopImmediatePropagation()
		g.handleTab(key.Shift)
		return
	}
	if !g.list || key.Modified() {
		return
	}
	next, prev := key.Down, key.Up
	if g.orientation == Horizontal {
		next, prev = key.Right, key.Left
	}
	switch {
	case next:
		e.StopImmediatePropagation()
		g.FocusNext()
	case prev:
		e.StopImmediatePropagation()
		g.FocusPrevious()
	}
}

// handleTab steps through the group's own items and leaves the group from
// its boundary items.
func (g *Group) handleTab(backwards bool) {
	nodes := g.FocusableChildren()
	i := slices.Index(nodes, g.node.window.active)
	switch {
	case i == -1:
	case backwards && i > 0:
		g.FocusIndex(i - 1)
		return
	case !backwards && i < len(nodes)-1:
		g.FocusIndex(i + 1)
		return
	}
	if backwards {
		g.NavigatePrevious()
	} else {
		g.NavigateNext()
	}
}

// NavigateNext moves focus to the next group in tab order: the first child
// group with focusables, then following siblings, then outward through the
// parent groups, wrapping to the first root group. With no destination the
// group deactivates and focus stays where it is.
func (g *Group) NavigateNext() bool {
	for _, child := range g.childGroups() {
		if target := child.entry(); target != nil {
			return g.moveTo(target)
		}
	}
	if target := g.nextAfterChildren(); target != nil {
		return g.moveTo(target)
	}
	g.deactivate()
	return false
}

func (g *Group) nextAfterChildren() *Node {
	siblings := g.siblingGroups()
	i := slices.Index(siblings, g)
	for _, s := range siblings[i+1:] {
		if target := s.entry(); target != nil {
			return target
		}
	}
	if parent := g.parentGroup(); parent != nil {
		return parent.nextAfterChildren()
	}
	for _, s := range siblings {
		if target := s.entry(); target != nil {
			return target
		}
	}
	return nil
}

// NavigatePrevious moves focus to the remembered item of the deepest last
// group of the previous sibling, or back to the parent group's remembered
// item. At the first root group it deactivates.
func (g *Group) NavigatePrevious() bool {
	siblings := g.siblingGroups()
	i := slices.Index(siblings, g)
	for j := i - 1; j >= 0; j-- {
		if siblings[j].entry() == nil {
			continue
		}
		if target := siblings[j].deepestLast().remembered(); target != nil {
			return g.moveTo(target)
		}
	}
	if parent := g.parentGroup(); parent != nil {
		if target := parent.remembered(); target != nil {
			return g.moveTo(target)
		}
	}
	g.deactivate()
	return false
}

func (g *Group) moveTo(target *Node) bool {
	g.node.window.Focus(target)
	if !g.holdsFocus() {
		g.deactivate()
	}
	return true
}

// entry is the first node focused when navigation enters the group.
func (g *Group) entry() *Node {
	if nodes := g.FocusableChildren(); len(nodes) > 0 {
		return nodes[0]
	}
	for _, child := range g.childGroups() {
		if target := child.entry(); target != nil {
			return target
		}
	}
	return nil
}

// remembered is the last focused own item, falling back to the entry.
func (g *Group) remembered() *Node {
	if current := g.Current(); current != nil {
		return current
	}
	return g.entry()
}

func (g *Group) deepestLast() *Group {
	children := g.childGroups()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].entry() != nil {
			return children[i].deepestLast()
		}
	}
	return g
}

func (g *Group) parentGroup() *Group {
	for cur := g.node.parent; cur != nil; cur = cur.parent {
		if cur.group != nil {
			return cur.group
		}
	}
	return nil
}

func (g *Group) childGroups() []*Group {
	return sortGroups(groupsBelow(g.node))
}

func (g *Group) siblingGroups() []*Group {
	if parent := g.parentGroup(); parent != nil {
		return parent.childGroups()
	}
	roots := groupsBelow(g.node.window.root)
	if !slices.Contains(roots, g) {
		roots = append(roots, g)
	}
	return sortGroups(roots)
}

// groupsBelow returns the closest groups under n, not descending into them.
func groupsBelow(n *Node) []*Group {
	var out []*Group
	for _, c := range n.children {
		if c.group != nil {
			out = append(out, c.group)
			continue
		}
		out = append(out, groupsBelow(c)...)
	}
	return out
}

// sortGroups orders groups by the top-left corner spanned by their own
// focusables. Groups without a position keep tree order at the end.
func sortGroups(groups []*Group) []*Group {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b *Group) int {
		return comparePositions(a.position(), b.position(), func(a, b position) int {
			return cmp.Or(cmp.Compare(a.top, b.top), cmp.Compare(a.left, b.left))
		})
	})
	return out
}

func (g *Group) position() position {
	var pos position
	for _, n := range g.FocusableChildren() {
		r, ok := n.Bounds()
		if !ok {
			continue
		}
		if !pos.ok {
			pos = position{left: r.X, top: r.Y, ok: true}
			continue
		}
		pos.left = min(pos.left, r.X)
		pos.top = min(pos.top, r.Y)
	}
	return pos
}
