package chat

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"

	"github.com/zhubert/chatter/internal/layout"
)

// Bubble chrome, in cells. A bubble is a rounded border around one cell of
// horizontal padding, a sender line, the body and a date line.
const (
	borderCells  = 2
	paddingCells = 2
	// ChromeWidth is the horizontal space a bubble spends outside its text.
	ChromeWidth = borderCells + paddingCells
	// ChromeHeight is the border plus the sender and date lines.
	ChromeHeight = 2 + 1 + 1

	// DateWidth is the width of an "HH:MM" label.
	DateWidth = 5
	// DateFormat is the Go layout for the date label.
	DateFormat = "15:04"
)

// Sizer estimates bubble sizes for a list of a given width.
type Sizer struct {
	listWidth   int
	minRatio    float64
	maxRatio    float64
	imageHeight int
}

// NewSizer creates a sizer. minRatio and maxRatio bound bubble widths as a
// fraction of listWidth; imageHeight is the rows an attached image adds.
func NewSizer(listWidth int, minRatio, maxRatio float64, imageHeight int) *Sizer {
	return &Sizer{
		listWidth:   listWidth,
		minRatio:    minRatio,
		maxRatio:    maxRatio,
		imageHeight: imageHeight,
	}
}

// SetWidth changes the list width. Returns false if it was unchanged.
func (s *Sizer) SetWidth(listWidth int) bool {
	if s.listWidth == listWidth {
		return false
	}
	s.listWidth = listWidth
	return true
}

// ListWidth returns the width sizes are computed for.
func (s *Sizer) ListWidth() int {
	return s.listWidth
}

// ImageHeight returns the rows reserved for an attached image.
func (s *Sizer) ImageHeight() int {
	return s.imageHeight
}

// WidthBounds returns the narrowest and widest a bubble may be.
func (s *Sizer) WidthBounds() (minWidth, maxWidth int) {
	floor := ChromeWidth + 1
	maxWidth = max(int(float64(s.listWidth)*s.maxRatio), floor)
	minWidth = max(int(float64(s.listWidth)*s.minRatio), floor)
	return min(minWidth, maxWidth), maxWidth
}

// TextWidth returns the widest a line of body text may be.
func (s *Sizer) TextWidth() int {
	_, maxWidth := s.WidthBounds()
	return maxWidth - ChromeWidth
}

// Wrap breaks body into lines no wider than TextWidth. Words longer than a
// line are split.
func (s *Sizer) Wrap(body string) []string {
	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		return nil
	}
	limit := s.TextWidth()
	wrapped := wrap.String(wordwrap.String(body, limit), limit)
	return strings.Split(wrapped, "\n")
}

// Size returns the bubble size for r. The sender line shows senderLabel.
// Every bubble reserves at least one text row; an image adds ImageHeight rows
// and widens the bubble to the maximum width.
func (s *Sizer) Size(r Record, senderLabel string) layout.Size {
	minWidth, maxWidth := s.WidthBounds()

	lines := s.Wrap(r.Body)
	textWidth := max(runewidth.StringWidth(senderLabel), DateWidth)
	for _, line := range lines {
		textWidth = max(textWidth, ansi.StringWidth(line))
	}

	width := min(max(textWidth+ChromeWidth, minWidth), maxWidth)
	height := max(len(lines), 1) + ChromeHeight

	if r.HasImage() {
		height += s.imageHeight
		width = maxWidth
	}

	return layout.Size{Width: width, Height: height}
}

// Truncate shortens s to at most width cells, cutting on grapheme cluster
// boundaries and ending with an ellipsis when anything was removed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	b.WriteString("…")
	return b.String()
}
