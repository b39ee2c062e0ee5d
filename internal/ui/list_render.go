package ui

import (
	"regexp"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/layout"
	"github.com/zhubert/chatter/internal/media"
)

var (
	linkPattern  = regexp.MustCompile(`(?:https?://|www\.)[^\s<>"]+[^\s<>".,;:!?)]`)
	phonePattern = regexp.MustCompile(`\+?\(?\d{1,4}\)?[\s.-]?\d{2,4}[\s.-]?\d{3,4}(?:[\s.-]?\d{2,4})?`)
)

// renderedBubble is a drawn bubble and everything it was drawn from.
type renderedBubble struct {
	display  *layout.DisplayAttributes
	size     layout.Size
	record   chat.Record
	sender   string
	date     string
	selected bool
	faint    bool
	image    imageState
	img      *media.Image
	lines    []string
}

func (b *renderedBubble) reusable(o *renderedBubble) bool {
	return b.display.Equal(o.display) &&
		b.size == o.size &&
		b.record == o.record &&
		b.sender == o.sender &&
		b.date == o.date &&
		b.selected == o.selected &&
		b.faint == o.faint &&
		b.image == o.image &&
		b.img == o.img
}

// View renders the visible part of the conversation. Engine row y appears
// on screen row height-1-(y-offset), so the newest message sits at the
// bottom next to the composer and older ones stack above it.
func (l *MessageList) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}
	if l.conv.Len() == 0 {
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center,
			EmptyListStyle.Render("No messages yet"))
	}

	rows := make([]string, l.height)
	visible := l.visibleRect()

	if hf, ok := l.engine.HeaderFrame(0); ok && hf.Intersects(visible) {
		label := humanize.Comma(int64(l.conv.Len())) + " messages"
		if l.conv.Len() == 1 {
			label = "1 message"
		}
		line := lipgloss.PlaceHorizontal(hf.Size.Width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(ColorTextMuted).Render(chat.Truncate(label, hf.Size.Width)))
		for y := hf.MinY(); y < hf.MaxY(); y++ {
			l.putRow(rows, l.screenRow(y), hf.MinX(), line)
		}
	}

	for _, a := range l.engine.ItemsIntersecting(visible) {
		it, ok := l.conv.ItemAt(a.IndexPath)
		if !ok {
			continue
		}
		anim := l.anims[it.Record.ID]
		lines := l.bubble(it, a, anim)

		top := l.screenRow(a.Frame.MaxY() - 1)
		if anim != nil {
			top += anim.translate
		}
		for k, line := range lines {
			l.putRow(rows, top+k, a.Frame.MinX(), line)
		}
	}

	for i, r := range rows {
		if w := ansi.StringWidth(r); w < l.width {
			rows[i] = r + strings.Repeat(" ", l.width-w)
		}
	}
	return strings.Join(rows, "\n")
}

func (l *MessageList) putRow(rows []string, row, x int, line string) {
	if row < 0 || row >= len(rows) {
		return
	}
	rows[row] = strings.Repeat(" ", max(x, 0)) + line
}

// bubble returns the lines of the item's bubble, top to bottom, reusing the cached
// drawing when nothing it depends on changed.
func (l *MessageList) bubble(it chat.Item, a *layout.ItemAttributes, anim *appearAnim) []string {
	want := &renderedBubble{
		display:  a.Display,
		size:     a.Frame.Size,
		record:   it.Record,
		sender:   it.Sender,
		date:     it.Date,
		selected: it.Record.ID == l.selected,
		faint:    anim != nil && anim.alpha < 1,
	}
	if slot, ok := l.images[it.Record.ID]; ok && slot.ref == it.Record.ImageRef {
		want.image = slot.state
		want.img = slot.img
	}

	if cached, ok := l.cache[it.Record.ID]; ok && cached.reusable(want) {
		return cached.lines
	}
	want.lines = drawBubble(it, want, l.conv.Sizer())
	l.cache[it.Record.ID] = want
	return want.lines
}

// drawBubble draws a bubble at exactly b.size: a rounded border, one cell of
// padding either side, then the sender line, the body, any image and the
// date line.
func drawBubble(it chat.Item, b *renderedBubble, sizer *chat.Sizer) []string {
	w, h := b.size.Width, b.size.Height
	inner := w - chat.ChromeWidth
	if inner < 1 || h < 2 {
		return nil
	}

	d := b.display
	if d == nil {
		d = &layout.DisplayAttributes{}
	}
	base := lipgloss.NewStyle().Faint(b.faint)
	if d.BackgroundColor != "" {
		base = base.Background(lipgloss.Color(string(d.BackgroundColor)))
	}
	text := base
	if d.TextColor != "" {
		text = text.Foreground(lipgloss.Color(string(d.TextColor)))
	}
	text = applyFont(text, d.Font)

	border := BubbleBorderStyle
	if b.selected {
		border = BubbleSelectedBorderStyle
	}

	var content []string
	sender := chat.Truncate(b.sender, inner)
	content = append(content, text.Bold(true).Render(alignText(sender, inner, d.TextAlignment)))

	body := sizer.Wrap(b.record.Body)
	if len(body) == 0 {
		body = []string{""}
	}
	for _, line := range body {
		content = append(content, highlight(chat.Truncate(line, inner), inner, d, text))
	}

	if b.record.HasImage() {
		content = append(content, imageRows(b, inner, sizer.ImageHeight(), text)...)
	}

	date := dateLine(b.date, inner, d, base)
	for len(content) < h-3 {
		content = append(content, text.Render(strings.Repeat(" ", inner)))
	}
	content = append(content[:min(len(content), h-3)], date)

	lines := make([]string, 0, h)
	lines = append(lines, border.Render("╭"+strings.Repeat("─", w-2)+"╮"))
	pad := base.Render(" ")
	side := border.Render("│")
	for _, c := range content {
		lines = append(lines, side+pad+c+pad+side)
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", w-2)+"╯"))
	return lines
}

func applyFont(s lipgloss.Style, f layout.FontStyle) lipgloss.Style {
	if f.Bold {
		s = s.Bold(true)
	}
	if f.Italic {
		s = s.Italic(true)
	}
	if f.Faint {
		s = s.Faint(true)
	}
	return s
}

// alignText pads plain s to width cells.
func alignText(s string, width int, align layout.TextAlignment) string {
	gap := max(width-ansi.StringWidth(s), 0)
	switch align {
	case layout.TextAlignRight:
		return strings.Repeat(" ", gap) + s
	case layout.TextAlignCenter:
		return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// highlight renders a body line, underlining the links and phone numbers
// enabled in d's data detectors.
func highlight(line string, width int, d *layout.DisplayAttributes, text lipgloss.Style) string {
	line = alignText(line, width, d.TextAlignment)

	var spans [][]int
	if d.DataDetectors.Has(layout.DetectLink) {
		spans = append(spans, linkPattern.FindAllStringIndex(line, -1)...)
	}
	if d.DataDetectors.Has(layout.DetectPhoneNumber) {
		for _, s := range phonePattern.FindAllStringIndex(line, -1) {
			if !overlaps(spans, s) {
				spans = append(spans, s)
			}
		}
	}
	if len(spans) == 0 {
		return text.Render(line)
	}

	slices.SortFunc(spans, func(a, b []int) int { return a[0] - b[0] })
	link := text.Foreground(ColorLink).Underline(true)
	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		if s[0] > pos {
			sb.WriteString(text.Render(line[pos:s[0]]))
		}
		sb.WriteString(link.Render(line[s[0]:s[1]]))
		pos = s[1]
	}
	if pos < len(line) {
		sb.WriteString(text.Render(line[pos:]))
	}
	return sb.String()
}

func overlaps(spans [][]int, s []int) bool {
	for _, o := range spans {
		if s[0] < o[1] && o[0] < s[1] {
			return true
		}
	}
	return false
}

// imageRows returns rows lines showing the attachment, or a placeholder
// while it loads or after it failed.
func imageRows(b *renderedBubble, width, rows int, text lipgloss.Style) []string {
	if rows <= 0 {
		return nil
	}
	if b.image == imageReady && b.img != nil {
		if thumb := media.Thumbnail(b.img, width, rows); thumb != "" {
			return strings.Split(thumb, "\n")
		}
	}

	label := "◌ loading image…"
	if b.image == imageFailed {
		label = "✕ image unavailable"
	}
	out := make([]string, rows)
	blank := text.Render(strings.Repeat(" ", width))
	for i := range out {
		out[i] = blank
	}
	out[rows/2] = text.Faint(true).Render(alignText(chat.Truncate(label, width), width, layout.TextAlignCenter))
	return out
}

// dateLine places the date label on the side the text is aligned to, with
// its padding, inside width cells.
func dateLine(date string, width int, d *layout.DisplayAttributes, base lipgloss.Style) string {
	label := chat.Truncate(date, width)
	padLeft, padRight := d.DateLabelPadding.Left, d.DateLabelPadding.Right
	for ansi.StringWidth(label)+padLeft+padRight > width && (padLeft > 0 || padRight > 0) {
		if padLeft > 0 {
			padLeft--
		} else {
			padRight--
		}
	}
	label = strings.Repeat(" ", padLeft) + label + strings.Repeat(" ", padRight)

	style := base
	if d.DateTextColor != "" {
		style = style.Foreground(lipgloss.Color(string(d.DateTextColor)))
	}
	style = applyFont(style, d.DateFont)
	return style.Render(alignText(label, width, d.TextAlignment))
}
