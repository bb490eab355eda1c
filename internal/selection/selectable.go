package selection

import (
	"context"
	"procdeck/internal/interact"
	"procdeck/internal/layout"
	"procdeck/pkg/logging"
)

// Selectable lets the user drag out a text selection over an element.
// The element's bounds are measured when it connects and again on Refresh.
type Selectable struct {
	id    string
	node  *interact.Node
	store *Store
	box   layout.Rect

	anchor Point
	last   Point
	moved  bool
	cancel context.CancelFunc
}

// NewSelectable creates a selectable region for el whose selections are
// recorded in store under id.
func NewSelectable(w *interact.Window, el layout.Element, store *Store, id string) *Selectable {
	return &Selectable{
		id:    id,
		node:  w.NewNode(el),
		store: store,
	}
}

// ID returns the selection id.
func (s *Selectable) ID() string { return s.id }

// Node returns the interaction node of the region.
func (s *Selectable) Node() *interact.Node { return s.node }

// Box returns the measured bounds of the region.
func (s *Selectable) Box() layout.Rect { return s.box }

// Range returns the region's current selection.
func (s *Selectable) Range() (Range, bool) { return s.store.Get(s.id) }

// Connect registers the region and starts listening for presses.
func (s *Selectable) Connect() error {
	if err := s.node.Connect(); err != nil {
		return err
	}
	s.Refresh()
	s.node.AddListener(interact.EventMouseDown, s.onDown)
	return nil
}

// Disconnect stops the region and drops its selection.
func (s *Selectable) Disconnect() {
	s.endDrag()
	s.node.Disconnect()
	s.store.Clear(s.id)
}

// Refresh re-measures the region after a layout change.
func (s *Selectable) Refresh() {
	if r, ok := s.node.Bounds(); ok {
		s.box = r
	}
}

func (s *Selectable) onDown(e *interact.Event) {
	if e.Button != interact.ButtonLeft {
		return
	}
	s.endDrag()
	s.anchor = Point{X: e.X, Y: e.Y}
	s.last = s.anchor
	s.moved = false

	var ctx context.Context
	ctx, s.cancel = context.WithCancel(s.node.Context())
	root := s.node.Window().Root()
	watch(ctx, root, interact.EventMouseMove, s.onMove)
	watch(ctx, root, interact.EventMouseUp, s.onUp)
}

// watch listens on root for every event of type t wherever it is targeted:
// in the capturing phase for descendants and at target for the root itself.
func watch(ctx context.Context, root *interact.Node, t interact.EventType, fn interact.Listener) {
	root.AddListener(t, fn, interact.WithCapture(), interact.WithContext(ctx))
	root.AddListener(t, func(e *interact.Event) {
		if e.Target == root {
			fn(e)
		}
	}, interact.WithContext(ctx))
}

func (s *Selectable) onMove(e *interact.Event) {
	p := Point{X: e.X, Y: e.Y}
	if p == s.last {
		return
	}
	s.last = p
	s.moved = true
	r := s.store.Set(s.id, s.anchor, p, s.box)
	logging.Debug("Selection", "%s spans %d rows", s.id, len(r.Rows))
}

func (s *Selectable) onUp(*interact.Event) {
	if !s.moved {
		s.store.Clear(s.id)
	}
	s.endDrag()
}

func (s *Selectable) endDrag() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
