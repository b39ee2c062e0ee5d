package ui

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/keys"
	"github.com/zhubert/chatter/internal/layout"
	"github.com/zhubert/chatter/internal/logger"
	"github.com/zhubert/chatter/internal/media"
)

// ImageLoader resolves a message's ImageRef. *media.Loader implements it.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (*media.Image, error)
}

// ImageLoadedMsg carries the result of an image load started by the list.
type ImageLoadedMsg struct {
	ItemID string
	Ref    string
	Image  *media.Image
	Err    error
}

type imageState int

const (
	imageLoading imageState = iota
	imageReady
	imageFailed
)

type imageSlot struct {
	ref   string
	state imageState
	img   *media.Image
}

// MessageList shows a conversation as bubbles, newest at the bottom. It is
// the layout engine's host: it reports its size and item counts, asks the
// engine for the items in view and draws them with the vertical axis
// flipped.
type MessageList struct {
	conv   *chat.Conversation
	engine *layout.Engine
	loader ImageLoader

	width   int
	height  int
	offset  int    // engine rows scrolled past; 0 shows the newest message
	focused bool
	selected string // message id, "" for none

	contentInset layout.Insets
	safeArea     layout.Insets
	margins      layout.Insets

	anims     map[string]*appearAnim
	animating bool
	images    map[string]*imageSlot
	cache     map[string]*renderedBubble

	log *slog.Logger
}

// NewMessageList creates a list showing conv. loader may be nil, in which
// case images stay as placeholders.
func NewMessageList(conv *chat.Conversation, cfg layout.Config, loader ImageLoader) *MessageList {
	l := &MessageList{
		conv:    conv,
		loader:  loader,
		margins: layout.Insets{Left: 1, Right: 1},
		anims:   make(map[string]*appearAnim),
		images:  make(map[string]*imageSlot),
		cache:   make(map[string]*renderedBubble),
		log:     logger.WithComponent("list"),
	}
	l.engine = layout.New(l, conv, cfg)
	return l
}

// Bounds implements layout.Host. The origin tracks the scroll offset.
func (l *MessageList) Bounds() layout.Rect {
	return layout.R(0, l.offset, l.width, l.height)
}

// ContentInset implements layout.Host.
func (l *MessageList) ContentInset() layout.Insets { return l.contentInset }

// SafeAreaInsets implements layout.Host.
func (l *MessageList) SafeAreaInsets() layout.Insets { return l.safeArea }

// LayoutMargins implements layout.Host.
func (l *MessageList) LayoutMargins() layout.Insets { return l.margins }

// NumberOfGroups implements layout.Host.
func (l *MessageList) NumberOfGroups() int { return l.conv.Groups() }

// NumberOfItems implements layout.Host.
func (l *MessageList) NumberOfItems(group int) int {
	if group != 0 {
		return 0
	}
	return l.conv.Len()
}

// SetInsets replaces the host insets the engine resolves section insets
// against, and lays out again.
func (l *MessageList) SetInsets(content, safeArea, margins layout.Insets) {
	l.contentInset = content
	l.safeArea = safeArea
	l.margins = margins
	l.relayout()
}

// Engine returns the layout engine.
func (l *MessageList) Engine() *layout.Engine {
	return l.engine
}

// Conversation returns the data source.
func (l *MessageList) Conversation() *chat.Conversation {
	return l.conv
}

// SetSize sets the list's inner dimensions. A width change resizes every
// bubble and lays out again; a height change only moves the visible window.
func (l *MessageList) SetSize(width, height int) tea.Cmd {
	width, height = max(width, 0), max(height, 0)
	widthChanged := width != l.width
	l.width, l.height = width, height

	if l.conv.Resize(width) || widthChanged {
		l.engine.Invalidate()
	}
	l.engine.Prepare()
	l.clampOffset()
	return l.LoadVisibleImages()
}

// SetFocused sets the focus state. Selection keys only work while focused.
func (l *MessageList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns the focus state
func (l *MessageList) IsFocused() bool {
	return l.focused
}

// SetPalette recolors every bubble.
func (l *MessageList) SetPalette(p chat.Palette) {
	l.conv.SetPalette(p)
	l.relayout()
}

// SetLayoutConfig replaces the engine settings.
func (l *MessageList) SetLayoutConfig(cfg layout.Config) {
	l.engine.SetConfig(cfg)
	l.engine.Prepare()
	l.clampOffset()
}

func (l *MessageList) relayout() {
	l.engine.Invalidate()
	l.engine.Prepare()
	l.clampOffset()
}

// Load replaces the whole conversation and shows the newest message. Nothing
// animates in.
func (l *MessageList) Load(records []chat.Record) tea.Cmd {
	updates := l.conv.Load(records)
	l.offset = 0
	l.relayout()
	l.prune()
	l.log.Debug("conversation loaded", "items", l.conv.Len(), "changes", len(updates))
	return l.LoadVisibleImages()
}

// Insert adds new records at the newest end.
func (l *MessageList) Insert(records ...chat.Record) tea.Cmd {
	return l.ApplyUpdates(l.conv.Insert(records...))
}

// Remove deletes the message with id.
func (l *MessageList) Remove(id string) (chat.Record, tea.Cmd, bool) {
	r, updates, ok := l.conv.Remove(id)
	if !ok {
		return chat.Record{}, nil, false
	}
	return r, l.ApplyUpdates(updates), true
}

// ApplyUpdates lays out the conversation after a batch of changes, starts
// appear animations for the items the batch brought in and scrolls back to
// the newest message when the engine asks for it.
func (l *MessageList) ApplyUpdates(updates []layout.UpdateItem) tea.Cmd {
	l.engine.PrepareForUpdates(updates)
	l.engine.Invalidate()
	l.engine.Prepare()

	for _, u := range updates {
		if u.Action == layout.UpdateDelete || u.After == nil {
			continue
		}
		a, ok := l.engine.InitialAttributesForAppearing(*u.After)
		if !ok {
			continue
		}
		it, ok := l.conv.ItemAt(*u.After)
		if !ok {
			continue
		}
		if a.Alpha < 1 || a.TranslateY > 0 {
			l.anims[it.Record.ID] = &appearAnim{alpha: a.Alpha, translate: a.TranslateY}
		}
	}

	if l.engine.FinalizeUpdates() {
		l.offset = 0
	}
	l.prune()
	l.clampOffset()

	l.log.Debug("updates applied", "count", len(updates), "items", l.conv.Len(), "animating", len(l.anims))
	return tea.Batch(l.startAnimation(), l.LoadVisibleImages())
}

// prune forgets state kept for messages that are gone.
func (l *MessageList) prune() {
	for id := range l.anims {
		if _, ok := l.conv.Index(id); !ok {
			delete(l.anims, id)
		}
	}
	for id := range l.images {
		if _, ok := l.conv.Index(id); !ok {
			delete(l.images, id)
		}
	}
	for id := range l.cache {
		if _, ok := l.conv.Index(id); !ok {
			delete(l.cache, id)
		}
	}
	if _, ok := l.conv.Index(l.selected); !ok {
		l.selected = ""
	}
}

// visibleRect is the window into the layout, in engine coordinates.
func (l *MessageList) visibleRect() layout.Rect {
	return layout.R(0, l.offset, l.width, l.height)
}

// screenRow maps an engine row to a row of the list's view.
func (l *MessageList) screenRow(y int) int {
	return l.height - 1 - (y - l.offset)
}

// Offset returns the scroll position in rows from the newest end.
func (l *MessageList) Offset() int {
	return l.offset
}

// MaxOffset returns the largest scroll position.
func (l *MessageList) MaxOffset() int {
	return max(l.engine.ContentSize().Height-l.height, 0)
}

func (l *MessageList) clampOffset() {
	l.offset = min(max(l.offset, 0), l.MaxOffset())
}

// ScrollBy moves the window delta rows toward older messages (negative
// toward newer).
func (l *MessageList) ScrollBy(delta int) tea.Cmd {
	l.offset += delta
	l.clampOffset()
	return l.LoadVisibleImages()
}

// ScrollToStart shows the newest message.
func (l *MessageList) ScrollToStart() tea.Cmd {
	l.offset = 0
	return l.LoadVisibleImages()
}

// ScrollToOldest shows the oldest message.
func (l *MessageList) ScrollToOldest() tea.Cmd {
	l.offset = l.MaxOffset()
	return l.LoadVisibleImages()
}

// Selected returns the selected item.
func (l *MessageList) Selected() (chat.Item, bool) {
	if l.selected == "" {
		return chat.Item{}, false
	}
	i, ok := l.conv.Index(l.selected)
	if !ok {
		return chat.Item{}, false
	}
	return l.conv.Item(i)
}

// ClearSelection deselects.
func (l *MessageList) ClearSelection() {
	l.selected = ""
}

// Select selects the item at index i (0 is newest) and scrolls it into view.
func (l *MessageList) Select(i int) tea.Cmd {
	it, ok := l.conv.Item(i)
	if !ok {
		return nil
	}
	l.selected = it.Record.ID
	return l.scrollIntoView(layout.At(0, i))
}

// moveSelection steps the selection toward older (delta > 0) or newer
// messages. With nothing selected it starts from the newest.
func (l *MessageList) moveSelection(delta int) tea.Cmd {
	if l.conv.Len() == 0 {
		return nil
	}
	i, ok := l.conv.Index(l.selected)
	if !ok {
		return l.Select(0)
	}
	return l.Select(min(max(i+delta, 0), l.conv.Len()-1))
}

func (l *MessageList) scrollIntoView(p layout.IndexPath) tea.Cmd {
	f, ok := l.engine.Frame(p)
	if !ok {
		return nil
	}
	switch {
	case f.MinY() < l.offset:
		l.offset = f.MinY()
	case f.MaxY() > l.offset+l.height:
		l.offset = f.MaxY() - l.height
	}
	l.clampOffset()
	return l.LoadVisibleImages()
}

// VisibleIDs returns the ids of the messages in view, newest first.
func (l *MessageList) VisibleIDs() []string {
	var ids []string
	for _, a := range l.engine.ItemsIntersecting(l.visibleRect()) {
		if it, ok := l.conv.ItemAt(a.IndexPath); ok {
			ids = append(ids, it.Record.ID)
		}
	}
	return ids
}

// LoadVisibleImages starts a load for every visible image that has not been
// requested for its current ref. Loads run off the event loop and report
// back with ImageLoadedMsg.
func (l *MessageList) LoadVisibleImages() tea.Cmd {
	if l.loader == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, a := range l.engine.ItemsIntersecting(l.visibleRect()) {
		it, ok := l.conv.ItemAt(a.IndexPath)
		if !ok || !it.Record.HasImage() {
			continue
		}
		id, ref := it.Record.ID, it.Record.ImageRef
		if slot, ok := l.images[id]; ok && slot.ref == ref {
			continue
		}
		l.images[id] = &imageSlot{ref: ref, state: imageLoading}
		cmds = append(cmds, loadImage(l.loader, id, ref))
	}
	return tea.Batch(cmds...)
}

func loadImage(loader ImageLoader, id, ref string) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(context.Background(), ref)
		return ImageLoadedMsg{ItemID: id, Ref: ref, Image: img, Err: err}
	}
}

// applyImage stores a finished load unless the message is gone or now
// points at a different image.
func (l *MessageList) applyImage(msg ImageLoadedMsg) {
	i, ok := l.conv.Index(msg.ItemID)
	if !ok {
		l.log.Debug("discarding image for removed message", "id", msg.ItemID)
		return
	}
	it, _ := l.conv.Item(i)
	if it.Record.ImageRef != msg.Ref {
		l.log.Debug("discarding stale image", "id", msg.ItemID, "ref", msg.Ref)
		return
	}

	slot := &imageSlot{ref: msg.Ref}
	if msg.Err != nil || msg.Image == nil {
		slot.state = imageFailed
		logger.WithMessage(msg.ItemID).Warn("image load failed", "ref", msg.Ref, "error", msg.Err)
	} else {
		slot.state = imageReady
		slot.img = msg.Image
	}
	l.images[msg.ItemID] = slot
}

// Update handles scroll keys, selection keys (while focused), mouse wheel,
// animation ticks and image results.
func (l *MessageList) Update(msg tea.Msg) (*MessageList, tea.Cmd) {
	switch msg := msg.(type) {
	case AnimationTickMsg:
		return l, l.advanceAnimation()

	case ImageLoadedMsg:
		l.applyImage(msg)
		return l, nil

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			return l, l.ScrollBy(ScrollWheelDelta)
		case tea.MouseWheelDown:
			return l, l.ScrollBy(-ScrollWheelDelta)
		}

	case tea.KeyPressMsg:
		page := max(l.height-1, 1)
		switch msg.String() {
		case keys.PgUp:
			return l, l.ScrollBy(page)
		case keys.PgDown:
			return l, l.ScrollBy(-page)
		case keys.CtrlU:
			return l, l.ScrollBy(page / 2)
		case keys.CtrlD:
			return l, l.ScrollBy(-page / 2)
		case keys.Home:
			return l, l.ScrollToOldest()
		case keys.End:
			return l, l.ScrollToStart()
		}
		if !l.focused {
			return l, nil
		}
		switch msg.String() {
		case keys.Up, "k":
			return l, l.moveSelection(1)
		case keys.Down, "j":
			return l, l.moveSelection(-1)
		case keys.Escape:
			l.ClearSelection()
		}
	}
	return l, nil
}
