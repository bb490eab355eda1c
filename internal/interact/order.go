package interact

import (
	"cmp"
	"slices"
)

// Ordering arranges a group's focusable nodes into navigation order.
type Ordering func(nodes []*Node) []*Node

// TreeOrder keeps nodes in the order they were found in the tree.
func TreeOrder(nodes []*Node) []*Node {
	return nodes
}

// RowMajorOrder sorts by top, then left. Nodes without bounds go last.
func RowMajorOrder(nodes []*Node) []*Node {
	return sortByPosition(nodes, func(a, b position) int {
		return cmp.Or(cmp.Compare(a.top, b.top), cmp.Compare(a.left, b.left))
	})
}

// ColumnMajorOrder sorts by left, then top. Nodes without bounds go last.
func ColumnMajorOrder(nodes []*Node) []*Node {
	return sortByPosition(nodes, func(a, b position) int {
		return cmp.Or(cmp.Compare(a.left, b.left), cmp.Compare(a.top, b.top))
	})
}

type position struct {
	left int
	top  int
	ok   bool
}

func positionOf(n *Node) position {
	r, ok := n.Bounds()
	return position{left: r.X, top: r.Y, ok: ok}
}

func sortByPosition(nodes []*Node, compare func(a, b position) int) []*Node {
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b *Node) int {
		return comparePositions(positionOf(a), positionOf(b), compare)
	})
	return out
}

func comparePositions(a, b position, compare func(a, b position) int) int {
	switch {
	case !a.ok && !b.ok:
		return 0
	case !a.ok:
		return 1
	case !b.ok:
		return -1
	default:
		return compare(a, b)
	}
}
