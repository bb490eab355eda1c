package interact

// EventType names an event kind delivered through the interaction tree.
type EventType string

const (
	EventInput      EventType = "input"
	EventFocus      EventType = "focus"
	EventBlur       EventType = "blur"
	EventMouseDown  EventType = "mouse-down"
	EventMouseUp    EventType = "mouse-up"
	EventMouseMove  EventType = "mouse-move"
	EventMouseEnter EventType = "mouse-enter"
	EventMouseLeave EventType = "mouse-leave"
	EventClick      EventType = "click"
)

// Phase is the stage of delivery an event is in.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// String makes Phase satisfy the fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "unknown"
	}
}

// Key holds the decoded intent flags of a keystroke.
type Key struct {
	Up        bool
	Down      bool
	Left      bool
	Right     bool
	PageUp    bool
	PageDown  bool
	Home      bool
	End       bool
	Tab       bool
	Shift     bool
	Return    bool
	Escape    bool
	Backspace bool
	Delete    bool
	Ctrl      bool
	Meta      bool
}

// Modified reports whether any modifier is held.
func (k Key) Modified() bool {
	return k.Shift || k.Ctrl || k.Meta
}

// MouseButton identifies the pointer button of a mouse event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// Event is a single occurrence travelling through the tree. Target is set by
// the first dispatch and never changes afterwards.
type Event struct {
	Type    EventType
	Phase   Phase
	Target  *Node
	Current *Node

	// Input payload.
	Input string
	Key   Key

	// Mouse payload.
	X      int
	Y      int
	Button MouseButton

	bubbles            bool
	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// NewInputEvent creates a bubbling keystroke event.
func NewInputEvent(input string, key Key) *Event {
	return &Event{Type: EventInput, Input: input, Key: key, bubbles: true}
}

// NewMouseEvent creates a pointer event. Enter and leave do not bubble.
func NewMouseEvent(t EventType, x, y int, button MouseButton) *Event {
	return &Event{
		Type:    t,
		X:       x,
		Y:       y,
		Button:  button,
		bubbles: t != EventMouseEnter && t != EventMouseLeave,
	}
}

// NewFocusEvent creates a focus event.
func NewFocusEvent() *Event {
	return &Event{Type: EventFocus, bubbles: true}
}

// NewBlurEvent creates a blur event.
func NewBlurEvent() *Event {
	return &Event{Type: EventBlur, bubbles: true}
}

// Bubbles reports whether the event travels back up after the target phase.
func (e *Event) Bubbles() bool {
	return e.bubbles
}

// PreventDefault marks the event so that Dispatch reports false.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation halts delivery to further nodes once the current node is done.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation additionally skips the remaining listeners of the current node.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

// PropagationStopped reports whether StopPropagation or StopImmediatePropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// ImmediatePropagationStopped reports whether StopImmediatePropagation was called.
func (e *Event) ImmediatePropagationStopped() bool {
	return e.immediateStopped
}

// IsTab reports whether the event is a tab keystroke.
func (e *Event) IsTab() bool {
	return e.Type == EventInput && e.Key.Tab
}
