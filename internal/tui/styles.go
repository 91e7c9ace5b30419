package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(1)

	WelcomeStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			PaddingLeft(1)

	// Card styles (dashboard panels)
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	// Form styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	SelectorStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	SelectorFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	// List item styles
	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ItemSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Bold(true)

	ItemDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorFgComment)

	// Cleaning status styles
	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	StatusCompletedStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StatusCleanStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StatusPartialStyle = lipgloss.NewStyle().
				Foreground(ColorOrange)

	StatusDirtyStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	RemarksStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary).
			Italic(true)

	// Notice styles (transient message line)
	NoticeOKStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true).
			PaddingLeft(1)

	NoticeErrStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	// Dimmed/info style for hints and placeholders
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)

// statusStyle maps a cleanliness status to its display style
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "Clean":
		return StatusCleanStyle
	case "Partially Clean":
		return StatusPartialStyle
	default:
		return StatusDirtyStyle
	}
}
