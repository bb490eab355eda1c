package selection

import (
	"procdeck/internal/layout"
	"slices"
)

// Point is a screen cell.
type Point struct {
	X int
	Y int
}

// Before reports whether p comes before o in reading order.
func (p Point) Before(o Point) bool {
	return p.Y < o.Y || (p.Y == o.Y && p.X < o.X)
}

// Normalize orders two points so the first is earlier in reading order.
func Normalize(a, b Point) (Point, Point) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// Segment is the selected part of one screen row; Start and End are inclusive columns.
type Segment struct {
	Row   int
	Start int
	End   int
}

// Range is a selection expanded into row segments clipped to its box.
type Range struct {
	ID    string
	Start Point
	End   Point
	Box   layout.Rect
	Rows  []Segment
}

// RowSegments expands the reading-order range start..end into one segment per
// row of box. The first row runs to the box's right edge, the last row starts
// at its left edge and rows in between span the full width. Rows left empty
// by clipping are omitted.
func RowSegments(start, end Point, box layout.Rect) []Segment {
	if box.Empty() {
		return nil
	}
	left, right := box.X, box.Right()
	minY := max(box.Y, start.Y)
	maxY := min(box.Bottom(), end.Y)
	if minY > maxY {
		return nil
	}

	clampX := func(x int) int { return max(left, min(right, x)) }

	if minY == maxY {
		s, e := clampX(start.X), clampX(end.X)
		if s > e {
			return nil
		}
		return []Segment{{Row: minY, Start: s, End: e}}
	}

	var rows []Segment
	for row := minY; row <= maxY; row++ {
		s, e := left, right
		switch row {
		case start.Y:
			s = max(left, start.X)
		case end.Y:
			e = min(right, end.X)
		}
		if s <= e {
			rows = append(rows, Segment{Row: row, Start: s, End: e})
		}
	}
	return rows
}

// Store holds selections keyed by id and remembers which one is active.
type Store struct {
	ranges map[string]Range
	order  []string
	active string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{ranges: make(map[string]Range)}
}

// Set replaces the selection for id and makes it active.
func (s *Store) Set(id string, start, end Point, box layout.Rect) Range {
	start, end = Normalize(start, end)
	r := Range{ID: id, Start: start, End: end, Box: box, Rows: RowSegments(start, end, box)}
	if _, ok := s.ranges[id]; !ok {
		s.order = append(s.order, id)
	}
	s.ranges[id] = r
	s.active = id
	return r
}

// Clear drops the selection for id. When it was active the oldest remaining
// selection becomes active.
func (s *Store) Clear(id string) {
	if _, ok := s.ranges[id]; !ok {
		return
	}
	delete(s.ranges, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
	if s.active == id {
		s.active = ""
		if len(s.order) > 0 {
			s.active = s.order[0]
		}
	}
}

// ClearAll drops every selection.
func (s *Store) ClearAll() {
	clear(s.ranges)
	s.order = nil
	s.active = ""
}

// Get returns the selection for id.
func (s *Store) Get(id string) (Range, bool) {
	r, ok := s.ranges[id]
	return r, ok
}

// Active returns the active selection.
func (s *Store) Active() (Range, bool) {
	if s.active == "" {
		return Range{}, false
	}
	return s.Get(s.active)
}

// HasSelections reports whether any selection exists.
func (s *Store) HasSelections() bool {
	return len(s.ranges) > 0
}

// All returns every selection, oldest first.
func (s *Store) All() []Range {
	out := make([]Range, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.ranges[id])
	}
	return out
}
