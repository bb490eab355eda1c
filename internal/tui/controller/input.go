package controller

import (
	"procdeck/internal/interact"

	tea "github.com/charmbracelet/bubbletea"
)

// toInteractKey decodes a keystroke into the input text and intent flags
// understood by the interaction tree.
func toInteractKey(msg tea.KeyMsg) (string, interact.Key) {
	var k interact.Key
	k.Meta = msg.Alt
	switch msg.Type {
	case tea.KeyUp:
		k.Up = true
	case tea.KeyDown:
		k.Down = true
	case tea.KeyLeft:
		k.Left = true
	case tea.KeyRight:
		k.Right = true
	case tea.KeyShiftUp:
		k.Up, k.Shift = true, true
	case tea.KeyShiftDown:
		k.Down, k.Shift = true, true
	case tea.KeyCtrlUp:
		k.Up, k.Ctrl = true, true
	case tea.KeyCtrlDown:
		k.Down, k.Ctrl = true, true
	case tea.KeyPgUp:
		k.PageUp = true
	case tea.KeyPgDown:
		k.PageDown = true
	case tea.KeyHome:
		k.Home = true
	case tea.KeyEnd:
		k.End = true
	case tea.KeyTab:
		k.Tab = true
	case tea.KeyShiftTab:
		k.Tab, k.Shift = true, true
	case tea.KeyEnter:
		k.Return = true
	case tea.KeyEsc:
		k.Escape = true
	case tea.KeyBackspace:
		k.Backspace = true
	case tea.KeyDelete:
		k.Delete = true
	case tea.KeyRunes, tea.KeySpace:
	default:
		// Remaining key types are control sequences.
		k.Ctrl = true
	}
	return msg.String(), k
}

// toInteractMouse maps a mouse message onto an interaction event type and
// button. ok is false for messages the tree has no use for.
func toInteractMouse(msg tea.MouseMsg) (interact.EventType, interact.MouseButton, bool) {
	button := interact.ButtonNone
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = interact.ButtonLeft
	case tea.MouseButtonMiddle:
		button = interact.ButtonMiddle
	case tea.MouseButtonRight:
		button = interact.ButtonRight
	case tea.MouseButtonWheelUp:
		return interact.EventMouseDown, interact.ButtonWheelUp, msg.Action == tea.MouseActionPress
	case tea.MouseButtonWheelDown:
		return interact.EventMouseDown, interact.ButtonWheelDown, msg.Action == tea.MouseActionPress
	case tea.MouseButtonNone:
	default:
		return "", button, false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		return interact.EventMouseDown, button, button != interact.ButtonNone
	case tea.MouseActionRelease:
		return interact.EventMouseUp, button, true
	case tea.MouseActionMotion:
		return interact.EventMouseMove, button, true
	default:
		return "", button, false
	}
}
