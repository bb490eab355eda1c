package interact

import "context"

// Listener reacts to an event delivered at a node.
type Listener func(e *Event)

// ListenerOption configures a listener registration.
type ListenerOption func(*listener)

// WithCapture registers the listener for the capturing phase only.
func WithCapture() ListenerOption {
	return func(l *listener) {
		l.capture = true
	}
}

// WithContext ties the listener to ctx. A listener with several contexts is
// removed as soon as any one of them is done.
func WithContext(ctx context.Context) ListenerOption {
	return func(l *listener) {
		l.scopes = append(l.scopes, ctx)
	}
}

type listener struct {
	fn      Listener
	capture bool
	scopes  []context.Context
}

func (l *listener) alive() bool {
	for _, scope := range l.scopes {
		if scope.Err() != nil {
			return false
		}
	}
	return true
}

func (l *listener) matches(phase Phase) bool {
	if l.capture {
		return phase == PhaseCapturing
	}
	return phase != PhaseCapturing
}
