package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient footer message
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has been shown long enough
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically to dismiss expired flash messages
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg after a delay
func FlashTick() tea.Cmd {
	return tea.Tick(FlashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width         int
	listFocused   bool // Whether the message list has focus
	hasSelection  bool // Whether a message is selected
	hasAttachment bool // Whether the composer holds pending images
	flashMessage  *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(listFocused, hasSelection, hasAttachment bool) {
	f.listFocused = listFocused
	f.hasSelection = hasSelection
	f.hasAttachment = hasAttachment
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows text instead of the key hints until it expires
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  DefaultFlashDuration,
	}
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// ClearIfExpired removes the flash message if it has expired. Returns true
// if a message was removed.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the key hints for the current context
func (f *Footer) Bindings() []KeyBinding {
	if f.listFocused {
		bindings := []KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "end", Desc: "newest"},
		}
		if f.hasSelection {
			bindings = append(bindings,
				KeyBinding{Key: "c", Desc: "copy"},
				KeyBinding{Key: "d", Desc: "delete"},
			)
		}
		return append(bindings,
			KeyBinding{Key: "tab", Desc: "compose"},
			KeyBinding{Key: "q", Desc: "quit"},
		)
	}

	bindings := []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "ctrl+v", Desc: "paste image"},
	}
	if f.hasAttachment {
		bindings = append(bindings, KeyBinding{Key: "ctrl+x", Desc: "clear images"})
	}
	return append(bindings,
		KeyBinding{Key: "tab", Desc: "messages"},
		KeyBinding{Key: "pgup/dn", Desc: "scroll"},
		KeyBinding{Key: "ctrl+c", Desc: "quit"},
	)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(renderFlash(f.flashMessage))
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

func renderFlash(m *FlashMessage) string {
	var icon string
	style := lipgloss.NewStyle().Bold(true)
	switch m.Type {
	case FlashError:
		icon = "✕"
		style = style.Foreground(ColorError)
	case FlashWarning:
		icon = "⚠"
		style = style.Foreground(ColorWarning)
	case FlashSuccess:
		icon = "✓"
		style = style.Foreground(ColorSuccess)
	default:
		icon = "ℹ"
		style = style.Foreground(ColorInfo)
	}
	return style.Render(icon + " " + m.Text)
}
