// Package ui provides the user interface components for the chatter TUI.
//
// # Overview
//
// The ui package implements the visual components of chatter using the Bubble
// Tea framework and Lipgloss styling library. It follows the Model-Update-View
// pattern established by Bubble Tea.
//
// # Layout System
//
// The screen is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): avatar, title, subtitle            │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   MessageList (bubbles, newest at the bottom)       │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Composer (attachments + textarea)                   │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key hints or a flash message       │
//	└─────────────────────────────────────────────────────┘
//
// # Message list
//
// MessageList hosts a layout.Engine. The engine stacks items top-down from
// row 0, newest first. The list draws that layout flipped, so engine row y
// appears on screen row height-1-(y-offset) and the newest message sits just
// above the composer. Scrolling changes offset only; it never re-runs the
// layout pass.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the conversation avatar, title and subtitle over a
// gradient of the primary color.
//
// Footer: Shows context-aware keyboard shortcuts, or a flash message that
// dismisses itself.
//
// Composer: A textarea plus the list of images waiting to be sent.
//
// # Styles
//
// All styles are defined in styles.go and regenerated from the active Theme
// by SetTheme.
package ui
