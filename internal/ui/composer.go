package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/keys"
)

// Composer is the message input: a textarea plus the images waiting to be
// sent with the next message. Enter is left to the caller; alt+enter and
// shift+enter insert a newline.
type Composer struct {
	input       textarea.Model
	width       int
	focused     bool
	attachments []string
}

// NewComposer creates an empty composer
func NewComposer() *Composer {
	ti := textarea.New()
	ti.Placeholder = "Message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.KeyMap.InsertNewline.SetKeys(keys.AltEnter, keys.ShiftEnter)

	return &Composer{input: ti}
}

// SetWidth sets the composer's outer width
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.SetWidth(max(GetViewContext().InnerWidth(width)-InputPaddingWidth, 1))
}

// SetFocused sets the focus state
func (c *Composer) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Composer) IsFocused() bool {
	return c.focused
}

// Value returns the typed text without trailing whitespace
func (c *Composer) Value() string {
	return strings.TrimRight(c.input.Value(), " \t\n")
}

// SetValue replaces the typed text
func (c *Composer) SetValue(s string) {
	c.input.SetValue(s)
}

// AddAttachment queues an image path for the next send
func (c *Composer) AddAttachment(path string) {
	c.attachments = append(c.attachments, path)
}

// Attachments returns the queued image paths in the order they were added
func (c *Composer) Attachments() []string {
	out := make([]string, len(c.attachments))
	copy(out, c.attachments)
	return out
}

// HasAttachments reports whether any image is queued
func (c *Composer) HasAttachments() bool {
	return len(c.attachments) > 0
}

// ClearAttachments drops every queued image
func (c *Composer) ClearAttachments() {
	c.attachments = nil
}

// Reset clears the text and the queued images after a send
func (c *Composer) Reset() {
	c.input.Reset()
	c.attachments = nil
}

// Update forwards input to the textarea while focused
func (c *Composer) Update(msg tea.Msg) (*Composer, tea.Cmd) {
	if !c.focused {
		return c, nil
	}
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == keys.Enter {
		return c, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// attachmentLine summarizes the queued images on one line
func (c *Composer) attachmentLine(width int) string {
	if len(c.attachments) == 0 {
		return ""
	}
	names := make([]string, len(c.attachments))
	for i, p := range c.attachments {
		names[i] = filepath.Base(p)
	}
	noun := "image"
	if len(names) > 1 {
		noun = "images"
	}
	line := fmt.Sprintf("+ %d %s: %s", len(names), noun, strings.Join(names, ", "))
	return chat.Truncate(line, width)
}

// View renders the attachment line above the bordered textarea
func (c *Composer) View() string {
	style := ChatInputStyle
	if c.focused {
		style = ChatInputFocusedStyle
	}
	line := " " + AttachmentStyle.Render(c.attachmentLine(max(c.width-InputPaddingWidth, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, line, style.Width(c.width).Render(c.input.View()))
}
