package components

import (
	"procdeck/internal/tui/design"
	"procdeck/internal/tui/model"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	Width       int
	Message     string
	MessageType model.MessageType
	LeftText    string
	RightText   string
	ShowMessage bool
}

// NewStatusBar creates a new status bar
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{
		Width:       width,
		ShowMessage: false,
	}
}

// WithMessage sets a status message
func (s *StatusBar) WithMessage(message string, msgType model.MessageType) *StatusBar {
	s.Message = message
	s.MessageType = msgType
	s.ShowMessage = message != ""
	return s
}

// WithLeftText sets the left side text
func (s *StatusBar) WithLeftText(text string) *StatusBar {
	s.LeftText = text
	return s
}

// WithRightText sets the right side text
func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.RightText = text
	return s
}

// Render returns the styled status bar, exactly Width cells wide.
func (s *StatusBar) Render() string {
	style := s.getStyle()
	inner := max(s.Width-style.GetHorizontalPadding(), 0)

	var content string
	if s.ShowMessage {
		content = s.Message
	} else {
		leftWidth := ansi.StringWidth(s.LeftText)
		rightWidth := ansi.StringWidth(s.RightText)
		if padding := inner - leftWidth - rightWidth; padding > 0 {
			content = s.LeftText + strings.Repeat(" ", padding) + s.RightText
		} else {
			// Not enough space, just show left text
			content = s.LeftText
		}
	}
	content = ansi.Truncate(content, inner, "…")

	return style.
		Width(s.Width).
		MaxWidth(s.Width).
		Render(content)
}

// getStyle returns the appropriate style based on message type
func (s *StatusBar) getStyle() lipgloss.Style {
	if s.ShowMessage {
		switch s.MessageType {
		case model.StatusBarSuccess:
			return design.StatusBarSuccessStyle
		case model.StatusBarError:
			return design.StatusBarErrorStyle
		case model.StatusBarWarning:
			return design.StatusBarWarningStyle
		case model.StatusBarInfo:
			return design.StatusBarInfoStyle
		}
	}
	return design.StatusBarStyle
}
