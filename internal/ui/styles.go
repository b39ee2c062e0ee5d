package ui

import "charm.land/lipgloss/v2"

// Color palette, initialized from the default theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#9CA3AF") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorLink        = lipgloss.Color("#67E8F9") // Detected links
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan
	ColorError       = lipgloss.Color("#EF4444") // Red
	ColorSuccess     = lipgloss.Color("#10B981") // Green
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Composer styles
var (
	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	AttachmentStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Message list styles. Bubble fill and text colors come from each item's
// display attributes, not from here.
var (
	BubbleBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	BubbleSelectedBorderStyle = lipgloss.NewStyle().
					Foreground(ColorBorderFocus).
					Bold(true)

	EmptyListStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)
