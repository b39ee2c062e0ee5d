package ui

import (
	"fmt"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Header represents the top header bar: conversation avatar, title and
// subtitle on the left, the local user on the right.
type Header struct {
	width    int
	title    string
	subtitle string
	userName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversation sets the title and subtitle to display
func (h *Header) SetConversation(title, subtitle string) {
	h.title = title
	h.subtitle = subtitle
}

// SetUserName sets the local user shown on the right
func (h *Header) SetUserName(name string) {
	h.userName = name
}

// Initials returns up to two uppercase initials for an avatar, taken from the
// first two words of name. Returns "?" for a blank name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// View renders the header
func (h *Header) View() string {
	left := fmt.Sprintf(" (%s) %s", Initials(h.title), h.title)
	if h.subtitle != "" {
		left += " · " + h.subtitle
	}
	var right string
	if h.userName != "" {
		right = h.userName + " "
	}

	avail := h.width - ansi.StringWidth(right)
	if ansi.StringWidth(left) > avail {
		left = ansi.Truncate(left, max(avail, 0), "…")
	}
	padding := max(h.width-ansi.StringWidth(left)-ansi.StringWidth(right), 0)

	return h.renderGradient(left+strings.Repeat(" ", padding)+right, len([]rune(left)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content over a background fading from the
// primary color to the main background. Runes before boldUntil are bold.
func (h *Header) renderGradient(content string, boldUntil int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < boldUntil)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
