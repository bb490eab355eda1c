package layout

// Rect is a screen-space rectangle measured in terminal cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the last column covered by the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width - 1
}

// Bottom returns the last row covered by the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height - 1
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
// The rectangle is half-open: X+Width and Y+Height are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Element is the host layout handle the interaction tree is built over.
type Element interface {
	Parent() Element
	Children() []Element
	Bounds() Rect
}
