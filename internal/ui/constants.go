package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the composer textarea
	TextareaHeight = 3

	// AttachmentLineHeight is the line above the textarea listing pending images
	AttachmentLineHeight = 1

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// ComposerHeight is the total height of the composer (attachments + textarea + borders)
	ComposerHeight = AttachmentLineHeight + TextareaHeight + BorderSize

	// MinTerminalWidth is the narrowest terminal the layout is computed for
	MinTerminalWidth = 40

	// MinTerminalHeight is the shortest terminal the layout is computed for
	MinTerminalHeight = 12
)

// Message list behavior
const (
	// ScrollWheelDelta is the number of rows one mouse wheel step scrolls
	ScrollWheelDelta = 3

	// AnimationInterval is the time between appear animation frames
	AnimationInterval = 40 * time.Millisecond

	// AlphaStep is how much opacity an appearing bubble gains per frame
	AlphaStep = 0.34
)

// Flash messages
const (
	// DefaultFlashDuration is how long a flash message stays in the footer
	DefaultFlashDuration = 4 * time.Second

	// FlashTickInterval is how often expired flashes are checked
	FlashTickInterval = 500 * time.Millisecond
)
