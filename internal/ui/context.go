package ui

import (
	"sync"

	"github.com/zhubert/chatter/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight   int
	FooterHeight   int
	ContentHeight  int // everything between header and footer
	ComposerHeight int
	ListWidth      int // inside the list panel border
	ListHeight     int

	mu sync.Mutex
}

// Global view context instance
var viewCtx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		viewCtx = &ViewContext{
			HeaderHeight:   HeaderHeight,
			FooterHeight:   FooterHeight,
			ComposerHeight: ComposerHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return viewCtx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
// This method is thread-safe and should be called from the main event loop
// when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Validate dimensions to prevent negative layout values
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height

	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ComposerHeight = ComposerHeight

	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.ListWidth = v.InnerWidth(width)
	v.ListHeight = max(v.InnerHeight(v.ContentHeight-v.ComposerHeight), 1)

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"listWidth", v.ListWidth,
		"listHeight", v.ListHeight,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
