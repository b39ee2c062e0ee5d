// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI, allowing users
// to customize the visual appearance of chatter.
package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/layout"
)

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for key hints, info)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Bubble colors
	Incoming     string // Bubbles from other people
	IncomingText string
	Outgoing     string // Bubbles sent by the local user
	OutgoingText string
	Link         string // Detected links and phone numbers

	// Semantic colors
	Warning string
	Error   string
	Info    string
	Success string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// Palette returns the bubble colors the conversation builds display
// attributes from.
func (t Theme) Palette() chat.Palette {
	return chat.Palette{
		IncomingBackground: layout.Color(t.Incoming),
		OutgoingBackground: layout.Color(t.Outgoing),
		IncomingText:       layout.Color(t.IncomingText),
		OutgoingText:       layout.Color(t.OutgoingText),
		DateText:           layout.Color(t.TextMuted),
	}
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:         "Dark Purple",
		Primary:      "#7C3AED",
		Secondary:    "#06B6D4",
		Bg:           "#1F2937",
		Text:         "#F9FAFB",
		TextMuted:    "#9CA3AF",
		TextInverse:  "#1F2937",
		Incoming:     "#374151",
		IncomingText: "#F9FAFB",
		Outgoing:     "#5B21B6",
		OutgoingText: "#F9FAFB",
		Link:         "#67E8F9",
		Warning:      "#F59E0B",
		Error:        "#EF4444",
		Info:         "#06B6D4",
		Success:      "#10B981",
		Border:       "#374151",
	},
	ThemeNord: {
		Name:         "Nord",
		Primary:      "#88C0D0",
		Secondary:    "#81A1C1",
		Bg:           "#2E3440",
		Text:         "#ECEFF4",
		TextMuted:    "#D8DEE9",
		TextInverse:  "#2E3440",
		Incoming:     "#3B4252",
		IncomingText: "#ECEFF4",
		Outgoing:     "#5E81AC",
		OutgoingText: "#ECEFF4",
		Link:         "#88C0D0",
		Warning:      "#EBCB8B",
		Error:        "#BF616A",
		Info:         "#81A1C1",
		Success:      "#A3BE8C",
		Border:       "#4C566A",
	},
	ThemeDracula: {
		Name:         "Dracula",
		Primary:      "#BD93F9",
		Secondary:    "#8BE9FD",
		Bg:           "#282A36",
		Text:         "#F8F8F2",
		TextMuted:    "#6272A4",
		TextInverse:  "#282A36",
		Incoming:     "#44475A",
		IncomingText: "#F8F8F2",
		Outgoing:     "#6D4AA8",
		OutgoingText: "#F8F8F2",
		Link:         "#8BE9FD",
		Warning:      "#FFB86C",
		Error:        "#FF5555",
		Info:         "#8BE9FD",
		Success:      "#50FA7B",
		Border:       "#44475A",
	},
	ThemeTokyoNight: {
		Name:         "Tokyo Night",
		Primary:      "#7AA2F7",
		Secondary:    "#BB9AF7",
		Bg:           "#1A1B26",
		Text:         "#C0CAF5",
		TextMuted:    "#565F89",
		TextInverse:  "#1A1B26",
		Incoming:     "#24283B",
		IncomingText: "#C0CAF5",
		Outgoing:     "#3D59A1",
		OutgoingText: "#C0CAF5",
		Link:         "#7DCFFF",
		Warning:      "#E0AF68",
		Error:        "#F7768E",
		Info:         "#7DCFFF",
		Success:      "#9ECE6A",
		Border:       "#3B4261",
	},
	ThemeLight: {
		Name:         "Light",
		Primary:      "#7C3AED",
		Secondary:    "#0891B2",
		Bg:           "#FFFFFF",
		Text:         "#1F2937",
		TextMuted:    "#6B7280",
		TextInverse:  "#FFFFFF",
		Incoming:     "#E5E7EB",
		IncomingText: "#1F2937",
		Outgoing:     "#7C3AED",
		OutgoingText: "#FFFFFF",
		Link:         "#0891B2",
		Warning:      "#D97706",
		Error:        "#DC2626",
		Info:         "#0891B2",
		Success:      "#059669",
		Border:       "#D1D5DB",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeTokyoNight,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	// Update color variables
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorLink = lipgloss.Color(t.Link)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	// Update header styles
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	// Update footer styles
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	// Update panel styles
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	// Update composer styles
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

	// Update message list styles
	BubbleBorderStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	BubbleSelectedBorderStyle = lipgloss.NewStyle().
		Foreground(ColorBorderFocus).
		Bold(true)

	EmptyListStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
}
