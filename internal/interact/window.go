package interact

import (
	"procdeck/internal/layout"
)

// Window is the root of the interaction tree and the single authority on
// which node holds focus. It owns the element registry and the queue of
// tasks deferred until the outermost dispatch returns.
type Window struct {
	root     *Node
	active   *Node
	hovered  *Node
	registry map[layout.Element]*Node
	manager  *FocusManager

	depth    int
	deferred []func()
}

// NewWindow creates an interaction root with nothing focused.
func NewWindow() *Window {
	w := &Window{registry: make(map[layout.Element]*Node)}
	w.root = newNode(w, nil)
	w.root.connected = true
	w.active = w.root
	w.manager = NewFocusManager(w.root)
	w.root.AddListener(EventInput, w.handleTab)
	return w
}

// Root returns the window node itself.
func (w *Window) Root() *Node { return w.root }

// Active returns the focused node; the root when nothing is focused.
func (w *Window) Active() *Node { return w.active }

// HasFocus reports whether a node below the root holds focus.
func (w *Window) HasFocus() bool { return w.active != w.root }

// FocusManager returns the window-level flat navigator.
func (w *Window) FocusManager() *FocusManager { return w.manager }

// Lookup returns the node registered for el.
func (w *Window) Lookup(el layout.Element) (*Node, bool) {
	n, ok := w.registry[el]
	return n, ok
}

// NewNode creates a plain, unconnected node bound to el.
func (w *Window) NewNode(el layout.Element) *Node {
	return newNode(w, el)
}

// NewFocusable creates an unconnected node that may hold focus.
func (w *Window) NewFocusable(el layout.Element) *Node {
	n := newNode(w, el)
	n.focusable = true
	return n
}

// Defer queues task to run once the outermost dispatch has completed.
// Outside of a dispatch the task runs immediately.
func (w *Window) Defer(task func()) {
	if w.depth == 0 {
		task()
		return
	}
	w.deferred = append(w.deferred, task)
}

// Batch runs fn as one logical turn: deferred tasks queued during fn run
// after it returns, in order, including tasks queued by those tasks.
func (w *Window) Batch(fn func()) {
	w.depth++
	defer func() {
		w.depth--
		if w.depth == 0 {
			w.flush()
		}
	}()
	fn()
}

func (w *Window) flush() {
	for len(w.deferred) > 0 {
		task := w.deferred[0]
		w.deferred = w.deferred[1:]
		w.depth++
		task()
		w.depth--
	}
}

// Dispatch delivers e with target as its target using capture, target and
// bubble phases. An event already in flight is only delivered locally.
// It returns false when a listener called PreventDefault.
func (w *Window) Dispatch(target *Node, e *Event) bool {
	if target == nil {
		target = w.root
	}
	if e.Target != nil {
		target.deliver(e)
		return !e.defaultPrevented
	}

	w.Batch(func() {
		e.Target = target
		path := ancestors(target)

		e.Phase = PhaseCapturing
		if target != w.root {
			w.root.deliver(e)
			if e.propagationStopped {
				return
			}
		}
		for i := len(path) - 1; i >= 0; i-- {
			path[i].deliver(e)
			if e.propagationStopped {
				return
			}
		}

		e.Phase = PhaseAtTarget
		target.deliver(e)
		if e.propagationStopped || !e.bubbles {
			return
		}

		e.Phase = PhaseBubbling
		for _, n := range path {
			n.deliver(e)
			if e.propagationStopped {
				return
			}
		}
		if target != w.root {
			w.root.deliver(e)
		}
	})
	return !e.defaultPrevented
}

// ancestors returns the chain from target's parent up to, but excluding, the root.
func ancestors(target *Node) []*Node {
	var path []*Node
	for cur := target.parent; cur != nil && cur != target.window.root; cur = cur.parent {
		path = append(path, cur)
	}
	return path
}

// Focus blurs the focused node and focuses n. Focusing the root is the same
// as blurring the focused node.
func (w *Window) Focus(n *Node) {
	if n == nil || n == w.active {
		return
	}
	if n == w.root {
		w.Blur(w.active)
		return
	}
	if !n.focusable {
		return
	}
	w.Batch(func() {
		w.Blur(w.active)
		w.active = n
		w.Dispatch(n, NewFocusEvent())
	})
}

// Blur drops focus from n if n holds it.
func (w *Window) Blur(n *Node) {
	if n == nil || n != w.active || n == w.root {
		return
	}
	w.Batch(func() {
		w.Dispatch(n, NewBlurEvent())
		if w.active == n {
			w.active = w.root
		}
	})
}

// FocusNext moves focus to the next focusable in window order.
func (w *Window) FocusNext() bool {
	return w.manager.FocusNext()
}

// FocusPrevious moves focus to the previous focusable in window order.
func (w *Window) FocusPrevious() bool {
	return w.manager.FocusPrevious()
}

// handleTab moves window-level focus for tab keystrokes while nothing is
// focused. A tab that reaches the root from a focused node is left alone.
func (w *Window) handleTab(e *Event) {
	if !e.IsTab() || w.active != w.root {
		return
	}
	e.StopImmediatePropagation()
	if e.Key.Shift {
		w.manager.FocusPrevious()
	} else {
		w.manager.FocusNext()
	}
}

// DispatchInput sends a keystroke to the focused node.
func (w *Window) DispatchInput(input string, key Key) bool {
	return w.Dispatch(w.active, NewInputEvent(input, key))
}

// DispatchMouse hit-tests (x, y), emits enter and leave events when the
// hovered node changes and sends the mouse event to the node under the pointer.
func (w *Window) DispatchMouse(t EventType, x, y int, button MouseButton) bool {
	target := w.NodeAt(x, y)
	result := true
	w.Batch(func() {
		w.updateHover(target, x, y, button)
		result = w.Dispatch(target, NewMouseEvent(t, x, y, button))
	})
	return result
}

func (w *Window) updateHover(target *Node, x, y int, button MouseButton) {
	if target == w.root {
		target = nil
	}
	if target == w.hovered {
		return
	}
	if prev := w.hovered; prev != nil {
		w.Dispatch(prev, NewMouseEvent(EventMouseLeave, x, y, button))
	}
	w.hovered = target
	if target != nil {
		w.Dispatch(target, NewMouseEvent(EventMouseEnter, x, y, button))
	}
}

// Hovered returns the node the pointer was last seen over.
func (w *Window) Hovered() *Node { return w.hovered }

// NodeAt returns the deepest node whose bounds contain (x, y), the root if none does.
// Later siblings win over earlier ones when bounds overlap.
func (w *Window) NodeAt(x, y int) *Node {
	found := w.root
	queue := append([]*Node(nil), w.root.children...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if r, ok := n.Bounds(); ok && r.Contains(x, y) {
			found = n
		}
		queue = append(queue, n.children...)
	}
	return found
}

// nearestRegistered walks up from el to the closest ancestor element with a node.
func (w *Window) nearestRegistered(el layout.Element) *Node {
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if n, ok := w.registry[cur]; ok {
			return n
		}
	}
	return w.root
}

// registeredBelow scans the subtree of el breadth-first and returns the
// registered nodes closest to el, without descending past them.
func (w *Window) registeredBelow(el layout.Element) []*Node {
	var found []*Node
	queue := el.Children()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if n, ok := w.registry[cur]; ok {
			found = append(found, n)
			continue
		}
		queue = append(queue, cur.Children()...)
	}
	return found
}
