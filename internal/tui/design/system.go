package design

import (
	"procdeck/internal/process"

	"github.com/charmbracelet/lipgloss"
)

// Design System Constants
const (
	// Spacing units
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2

	// Component dimensions
	MinSidebarWidth = 16
	MaxSidebarWidth = 40
	MinOutputWidth  = 20
)

// Color Palette - Semantic colors with consistent light/dark mode support
var (
	// Brand Colors
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#5A56E0",
		Dark:  "#7571F9",
	}

	// State Colors
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2563EB",
		Dark:  "#3B82F6",
	}

	// Neutral Colors
	ColorBackground = lipgloss.AdaptiveColor{
		Light: "#FFFFFF",
		Dark:  "#0F0F0F",
	}
	ColorSurface = lipgloss.AdaptiveColor{
		Light: "#F9FAFB",
		Dark:  "#1A1A1A",
	}
	ColorSurfaceAlt = lipgloss.AdaptiveColor{
		Light: "#F3F4F6",
		Dark:  "#262626",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#E5E7EB",
		Dark:  "#404040",
	}

	// Text Colors
	ColorText = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F9FAFB",
	}
	ColorTextSecondary = lipgloss.AdaptiveColor{
		Light: "#6B7280",
		Dark:  "#9CA3AF",
	}
	ColorTextMuted = lipgloss.AdaptiveColor{
		Light: "#9CA3AF",
		Dark:  "#6B7280",
	}

	// Special Purpose Colors
	ColorHighlight = lipgloss.AdaptiveColor{
		Light: "#EEF2FF",
		Dark:  "#312E81",
	}
	ColorBackgroundHighlight = lipgloss.AdaptiveColor{
		Light: "#E8F4FF",
		Dark:  "#2A3450",
	}
)

// Base Styles
var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextSecondaryStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	TextSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	TextErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	TextWarningStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Component Styles
var (
	// Header Styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Background(ColorSurface).
			Foreground(ColorText)

	BadgeStyle = lipgloss.NewStyle().
			Padding(0, SpaceXS).
			Bold(true).
			Foreground(ColorBackground)

	// Status Bar Styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurfaceAlt).
			Foreground(ColorText).
			Padding(0, SpaceXS).
			Height(1)

	StatusBarSuccessStyle = StatusBarStyle.
				Background(ColorSuccess).
				Foreground(ColorBackground)

	StatusBarErrorStyle = StatusBarStyle.
				Background(ColorError).
				Foreground(ColorBackground)

	StatusBarWarningStyle = StatusBarStyle.
				Background(ColorWarning).
				Foreground(ColorBackground)

	StatusBarInfoStyle = StatusBarStyle.
				Background(ColorInfo).
				Foreground(ColorBackground)

	// Sidebar Styles
	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextSecondary)

	SectionTitleActiveStyle = SectionTitleStyle.
				Foreground(ColorPrimary)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ListItemSelectedStyle = ListItemStyle.
				Foreground(ColorPrimary).
				Background(ColorHighlight).
				Bold(true)

	ListItemHoverStyle = ListItemStyle.
				Background(ColorSurfaceAlt)

	ListItemDeadStyle = ListItemStyle.
				Foreground(ColorTextMuted)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	SeparatorFocusStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	// Output Styles
	SelectionStyle = lipgloss.NewStyle().
			Reverse(true)

	ScrollTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	ScrollThumbStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// Help overlay styles
	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)
)

// GetStateStyle returns the text style of a process state.
func GetStateStyle(state process.State) lipgloss.Style {
	switch state {
	case process.StateRunning:
		return TextSuccessStyle
	case process.StateStarting, process.StateClosing:
		return TextWarningStyle
	default:
		return TextSecondaryStyle
	}
}

// GetBadgeStyle returns the header badge style of a process.
func GetBadgeStyle(state process.State, exitCode int) lipgloss.Style {
	switch {
	case state == process.StateRunning:
		return BadgeStyle.Background(ColorSuccess)
	case state.Alive(), state == process.StateClosing:
		return BadgeStyle.Background(ColorWarning)
	case exitCode != 0:
		return BadgeStyle.Background(ColorError)
	default:
		return BadgeStyle.Background(ColorTextMuted)
	}
}

// StateIcon returns the sidebar dot of a process.
func StateIcon(state process.State, exitCode int) string {
	switch {
	case state == process.StateRunning:
		return TextSuccessStyle.Render("●")
	case state.Alive(), state == process.StateClosing:
		return TextWarningStyle.Render("◐")
	case exitCode != 0:
		return TextErrorStyle.Render("●")
	default:
		return DimStyle.Render("○")
	}
}
