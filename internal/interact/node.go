package interact

import (
	"context"
	"errors"
	"fmt"
	"procdeck/internal/layout"
	"procdeck/pkg/logging"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrNestedFocusable is returned when a focusable node would end up above or below another focusable node.
	ErrNestedFocusable = errors.New("focusable node nested inside another focusable node")
	// ErrNoElement is returned when connecting a node that is not bound to a layout element.
	ErrNoElement = errors.New("node has no layout element")
)

// Node is a participant in the interaction tree. Optional capabilities are
// composed in: a node may be focusable, or carry a focus group.
type Node struct {
	id       string
	window   *Window
	element  layout.Element
	parent   *Node
	children []*Node

	listeners map[EventType][]*listener
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	focusable bool
	group     *Group

	pressed bool
	pressX  int
	pressY  int
}

func newNode(w *Window, el layout.Element) *Node {
	n := &Node{
		id:        uuid.NewString(),
		window:    w,
		element:   el,
		listeners: make(map[EventType][]*listener),
	}
	n.ctx, n.cancel = context.WithCancel(context.Background())
	return n
}

// ID returns the unique id of the node.
func (n *Node) ID() string { return n.id }

// Element returns the layout element the node is bound to.
func (n *Node) Element() layout.Element { return n.element }

// Parent returns the parent node, nil for the root and for orphans.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Connected reports whether the node is registered in the tree.
func (n *Node) Connected() bool { return n.connected }

// Focusable reports whether the node may hold focus.
func (n *Node) Focusable() bool { return n.focusable }

// Group returns the focus group capability of the node, or nil.
func (n *Node) Group() *Group { return n.group }

// Context returns the cancellation scope of the current connection.
func (n *Node) Context() context.Context { return n.ctx }

// Window returns the interaction root that owns the node.
func (n *Node) Window() *Window { return n.window }

// Bounds returns the screen rectangle of the bound element.
func (n *Node) Bounds() (layout.Rect, bool) {
	if n.element == nil {
		return layout.Rect{}, false
	}
	return n.element.Bounds(), true
}

// Focused reports whether the node currently holds focus.
func (n *Node) Focused() bool {
	return n.window.active == n
}

// Focus moves focus to the node.
func (n *Node) Focus() {
	n.window.Focus(n)
}

// Blur drops focus from the node if it holds it.
func (n *Node) Blur() {
	n.window.Blur(n)
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// AddListener registers fn for events of type t. The listener lives until
// the node disconnects or any context passed via WithContext is done.
func (n *Node) AddListener(t EventType, fn Listener, opts ...ListenerOption) {
	l := &listener{fn: fn, scopes: []context.Context{n.ctx}}
	for _, opt := range opts {
		opt(l)
	}
	n.listeners[t] = append(n.listeners[t], l)
}

// Dispatch sends e through the tree with n as target.
func (n *Node) Dispatch(e *Event) bool {
	return n.window.Dispatch(n, e)
}

func (n *Node) deliver(e *Event) {
	registered := n.listeners[e.Type]
	if len(registered) == 0 {
		return
	}
	e.Current = n
	for _, l := range slices.Clone(registered) {
		if e.immediateStopped {
			break
		}
		if !l.alive() || !l.matches(e.Phase) {
			continue
		}
		l.fn(e)
	}
	n.prune(e.Type)
}

func (n *Node) prune(t EventType) {
	n.listeners[t] = slices.DeleteFunc(n.listeners[t], func(l *listener) bool {
		return !l.alive()
	})
}

// Connect registers the node under the nearest registered ancestor of its
// element and adopts registered descendants found below the element.
func (n *Node) Connect() error {
	if n.element == nil {
		return ErrNoElement
	}
	if n.connected {
		n.Disconnect()
	}

	w := n.window
	parent := w.nearestRegistered(n.element)
	adopted := w.registeredBelow(n.element)

	if n.focusable {
		if owner := parent.focusableAncestorOrSelf(); owner != nil {
			n.resetScope()
			return fmt.Errorf("connect node %s below %s: %w", n.id, owner.id, ErrNestedFocusable)
		}
		for _, d := range adopted {
			if inner := d.firstFocusableInSubtree(); inner != nil {
				n.resetScope()
				return fmt.Errorf("connect node %s above %s: %w", n.id, inner.id, ErrNestedFocusable)
			}
		}
	}

	n.parent = parent
	parent.children = append(parent.children, n)
	w.registry[n.element] = n
	for _, d := range adopted {
		if d.parent != nil {
			d.parent.removeChild(d)
		}
		d.parent = n
		n.children = append(n.children, d)
	}
	n.connected = true

	n.installDefaults()
	if n.group != nil {
		n.group.connect()
	}

	logging.Debug("Interact", "Connected node %s under %s (adopted %d)", n.id, parent.id, len(adopted))
	return nil
}

// Disconnect removes the node from the tree, cancels its scope and orphans its children.
func (n *Node) Disconnect() {
	if !n.connected || n == n.window.root {
		return
	}
	w := n.window

	w.Blur(n)
	if n.group != nil {
		n.group.disconnect()
	}
	n.resetScope()

	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	delete(w.registry, n.element)
	if w.hovered == n {
		w.hovered = nil
	}
	n.connected = false
	n.pressed = false

	logging.Debug("Interact", "Disconnected node %s", n.id)
}

func (n *Node) resetScope() {
	n.cancel()
	n.ctx, n.cancel = context.WithCancel(context.Background())
}

func (n *Node) removeChild(child *Node) {
	n.children = slices.DeleteFunc(n.children, func(c *Node) bool { return c == child })
}

func (n *Node) focusableAncestorOrSelf() *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.focusable {
			return cur
		}
	}
	return nil
}

func (n *Node) firstFocusableInSubtree() *Node {
	if n.focusable {
		return n
	}
	for _, c := range n.children {
		if f := c.firstFocusableInSubtree(); f != nil {
			return f
		}
	}
	return nil
}

// installDefaults wires click detection and, for focusables, focus on click.
func (n *Node) installDefaults() {
	n.AddListener(EventMouseDown, func(e *Event) {
		if e.Target != n || e.Button != ButtonLeft {
			return
		}
		n.pressed = true
		n.pressX, n.pressY = e.X, e.Y
	})
	n.AddListener(EventMouseUp, func(e *Event) {
		if e.Target != n || !n.pressed {
			return
		}
		n.pressed = false
		if e.X == n.pressX && e.Y == n.pressY {
			n.window.Dispatch(n, NewMouseEvent(EventClick, e.X, e.Y, ButtonLeft))
		}
	})
	if n.focusable {
		n.AddListener(EventClick, func(e *Event) {
			if !e.DefaultPrevented() {
				n.window.Focus(n)
			}
		})
	}
}
