package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/keys"
	"github.com/zhubert/chatter/internal/media"
	"github.com/zhubert/chatter/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.updateSizes()

	case HistoryLoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.log.Error("failed to load history", "error", msg.Err)
			return m, m.ShowFlashWarning("Could not load message history")
		}
		m.log.Info("history loaded", "count", len(msg.Records))
		return m, m.list.Load(mergeHistory(msg.Records, m.conv.Records()))

	case StoreResultMsg:
		if msg.Err != nil {
			return m, m.ShowFlashWarning(fmt.Sprintf("Could not %s message", msg.Op))
		}
		return m, nil

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.AnimationTickMsg, ui.ImageLoadedMsg:
		_, cmd := m.list.Update(msg)
		return m, cmd

	case tea.MouseWheelMsg:
		_, cmd := m.list.Update(msg)
		return m, cmd

	case tea.PasteStartMsg:
		// Terminals turn ctrl+v into a paste; check for an image first so a
		// screenshot attaches instead of pasting nothing.
		if m.focus == FocusComposer {
			return m, m.pasteImage(false)
		}

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.focus == FocusComposer {
		_, cmd := m.composer.Update(msg)
		return m, cmd
	}
	return m, nil
}

// mergeHistory combines the stored history with records already on screen.
// The fetch is queued before any send, so messages sent while it was in
// flight are missing from loaded; the on-screen copy wins for shared ids.
func mergeHistory(loaded, shown []chat.Record) []chat.Record {
	if len(shown) == 0 {
		return loaded
	}
	onScreen := make(map[string]bool, len(shown))
	for _, r := range shown {
		onScreen[r.ID] = true
	}
	out := make([]chat.Record, 0, len(loaded)+len(shown))
	out = append(out, shown...)
	for _, r := range loaded {
		if !onScreen[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.CtrlC:
		return m, tea.Quit
	case keys.Tab, keys.ShiftTab:
		return m, m.toggleFocus()
	case keys.CtrlT:
		return m, m.cycleTheme()
	case keys.PgUp, keys.PgDown:
		_, cmd := m.list.Update(msg)
		return m, cmd
	}

	if m.focus == FocusList {
		switch key {
		case "q":
			return m, tea.Quit
		case "c":
			return m, m.copySelected()
		case "d", keys.Delete:
			return m, m.deleteSelected()
		case "i", keys.Enter:
			return m, m.setFocus(FocusComposer)
		}
		_, cmd := m.list.Update(msg)
		return m, cmd
	}

	switch key {
	case keys.Enter:
		return m, m.send()
	case keys.CtrlV:
		return m, m.pasteImage(true)
	case keys.CtrlX:
		if m.composer.HasAttachments() {
			m.composer.ClearAttachments()
			return m, m.ShowFlashInfo("Attachments cleared")
		}
		return m, nil
	case keys.End:
		return m, m.list.ScrollToStart()
	}

	_, cmd := m.composer.Update(msg)
	return m, cmd
}

// send turns the composer contents into messages, shows them and saves them
// in order.
func (m *Model) send() tea.Cmd {
	_, name := m.config.GetIdentity()
	records, err := m.conv.Compose(name, m.composer.Value(), m.composer.Attachments(), m.now())
	if err != nil {
		// Nothing to send
		return nil
	}
	m.composer.Reset()
	m.log.Debug("sending", "records", len(records))
	return tea.Batch(m.list.Insert(records...), m.saveRecords(records))
}

// pasteImage attaches the clipboard image. With reportEmpty false a missing
// image is silent so a text paste can proceed.
func (m *Model) pasteImage(reportEmpty bool) tea.Cmd {
	if m.clip == nil {
		return nil
	}
	img, err := m.clip.ReadImage()
	if err != nil {
		m.log.Warn("clipboard read failed", "error", err)
		return m.ShowFlashError("Clipboard image rejected: " + err.Error())
	}
	if img == nil {
		if reportEmpty {
			return m.ShowFlashInfo("No image in clipboard")
		}
		return nil
	}

	path, err := media.SaveAttachment(m.config.AttachmentDir(), img.Data)
	if err != nil {
		m.log.Error("failed to save attachment", "error", err)
		return m.ShowFlashError("Could not save pasted image")
	}
	m.composer.AddAttachment(path)
	return m.ShowFlashSuccess("Attached " + img.String())
}

func (m *Model) copySelected() tea.Cmd {
	it, ok := m.list.Selected()
	if !ok || m.clip == nil {
		return nil
	}
	text := copyText(it)
	if err := m.clip.WriteText(text); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		return m.ShowFlashError("Could not copy message")
	}
	return m.ShowFlashSuccess("Copied message")
}

// copyText is what copying a message puts on the clipboard: its text, or
// the image reference for image-only messages.
func copyText(it chat.Item) string {
	if it.Record.HasBody() {
		return it.Record.Body
	}
	return it.Record.ImageRef
}

func (m *Model) deleteSelected() tea.Cmd {
	it, ok := m.list.Selected()
	if !ok {
		return nil
	}
	_, cmd, ok := m.list.Remove(it.Record.ID)
	if !ok {
		return nil
	}
	return tea.Batch(cmd, m.deleteRecord(it.Record.ID), m.ShowFlashInfo("Message deleted"))
}

// cycleTheme switches to the next builtin theme and remembers it.
func (m *Model) cycleTheme() tea.Cmd {
	names := ui.ThemeNames()
	current := ui.CurrentThemeName()
	next := names[0]
	for i, n := range names {
		if n == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	ui.SetTheme(next)
	m.list.SetPalette(ui.CurrentTheme().Palette())
	m.config.SetTheme(string(next))
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return cmd
	}
	return m.ShowFlashInfo("Theme: " + ui.CurrentTheme().Name)
}
