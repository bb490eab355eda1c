package interact

import "slices"

// FocusManager navigates every focusable below a root as one flat list,
// ordered column-major (left, then top).
type FocusManager struct {
	root *Node
}

// NewFocusManager creates a manager over the subtree of root.
func NewFocusManager(root *Node) *FocusManager {
	return &FocusManager{root: root}
}

// Focusables returns the focusable nodes below the root in navigation order.
func (m *FocusManager) Focusables() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if c.focusable {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(m.root)
	return ColumnMajorOrder(out)
}

// FocusNext focuses the node after the focused one, wrapping around.
func (m *FocusManager) FocusNext() bool {
	return m.move(1)
}

// FocusPrevious focuses the node before the focused one, wrapping around.
func (m *FocusManager) FocusPrevious() bool {
	return m.move(-1)
}

func (m *FocusManager) move(delta int) bool {
	nodes := m.Focusables()
	if len(nodes) == 0 {
		return false
	}
	current := slices.Index(nodes, m.root.window.active)
	var next int
	switch {
	case current == -1 && delta < 0:
		next = len(nodes) - 1
	case current == -1:
		next = 0
	default:
		next = (current + delta + len(nodes)) % len(nodes)
	}
	m.root.window.Focus(nodes[next])
	return true
}
