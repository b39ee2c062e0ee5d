package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/chatter/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() tea.Cmd {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.composer.SetWidth(ctx.TerminalWidth - ui.BorderSize)
	return m.list.SetSize(ctx.ListWidth, ctx.ListHeight)
}

func (m *Model) updateFooterContext() {
	_, hasSelection := m.list.Selected()
	m.footer.SetContext(m.focus == FocusList, hasSelection, m.composer.HasAttachments())
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	m.updateFooterContext()

	panel := ui.PanelStyle
	if m.focus == FocusList {
		panel = ui.PanelFocusedStyle
	}
	list := panel.Render(m.list.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		list,
		m.composer.View(),
		m.footer.View(),
	)
}
