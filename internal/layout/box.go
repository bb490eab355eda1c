package layout

// Direction is the main axis a box lays its children out on.
type Direction int

const (
	Column Direction = iota
	ColumnReverse
	Row
	RowReverse
)

// String makes Direction satisfy the fmt.Stringer interface.
func (d Direction) String() string {
	switch d {
	case Column:
		return "column"
	case ColumnReverse:
		return "column-reverse"
	case Row:
		return "row"
	case RowReverse:
		return "row-reverse"
	default:
		return "unknown"
	}
}

// Box is a flex-style layout node. Sizes are assigned by the view layer on
// every resize; Bounds derives the absolute position from the sizes of the
// preceding siblings along each ancestor's main axis.
type Box struct {
	name      string
	direction Direction
	left      int
	top       int
	width     int
	height    int
	parent    *Box
	children  []*Box
}

// NewBox creates a detached box.
func NewBox(name string, direction Direction) *Box {
	return &Box{name: name, direction: direction}
}

// Name returns the debug name of the box.
func (b *Box) Name() string {
	return b.name
}

// Direction returns the main axis of the box.
func (b *Box) Direction() Direction {
	return b.direction
}

// Add appends children to the box, detaching them from any previous parent.
func (b *Box) Add(children ...*Box) *Box {
	for _, child := range children {
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = b
		b.children = append(b.children, child)
	}
	return b
}

// Remove detaches child from the box. Unknown children are ignored.
func (b *Box) Remove(child *Box) {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// SetSize assigns the computed size of the box.
func (b *Box) SetSize(width, height int) *Box {
	b.width = max(width, 0)
	b.height = max(height, 0)
	return b
}

// SetOffset assigns the computed offset of the box relative to its slot in the parent.
func (b *Box) SetOffset(left, top int) *Box {
	b.left = left
	b.top = top
	return b
}

// Size returns the computed width and height.
func (b *Box) Size() (int, int) {
	return b.width, b.height
}

// Parent implements Element.
func (b *Box) Parent() Element {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Children implements Element.
func (b *Box) Children() []Element {
	out := make([]Element, len(b.children))
	for i, c := range b.children {
		out[i] = c
	}
	return out
}

// Bounds implements Element.
func (b *Box) Bounds() Rect {
	return Rect{X: b.measureLeft(), Y: b.measureTop(), Width: b.width, Height: b.height}
}

func (b *Box) measureLeft() int {
	left := b.left
	current := b
	for parent := b.parent; parent != nil; current, parent = parent, parent.parent {
		left += parent.left
		switch parent.direction {
		case Row:
			for _, sibling := range parent.children {
				if sibling == current {
					break
				}
				left += sibling.width
			}
		case RowReverse:
			for _, sibling := range parent.trailing(current) {
				left += sibling.width
			}
		}
	}
	return left
}

func (b *Box) measureTop() int {
	top := b.top
	current := b
	for parent := b.parent; parent != nil; current, parent = parent, parent.parent {
		top += parent.top
		switch parent.direction {
		case Column:
			for _, sibling := range parent.children {
				if sibling == current {
					break
				}
				top += sibling.height
			}
		case ColumnReverse:
			for _, sibling := range parent.trailing(current) {
				top += sibling.height
			}
		}
	}
	return top
}

func (b *Box) trailing(child *Box) []*Box {
	for i, c := range b.children {
		if c == child {
			return b.children[i+1:]
		}
	}
	return nil
}
