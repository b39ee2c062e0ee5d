package chat

import (
	"github.com/zhubert/chatter/internal/layout"
)

// Palette holds the colors display attributes are built from.
type Palette struct {
	IncomingBackground layout.Color
	OutgoingBackground layout.Color
	IncomingText       layout.Color
	OutgoingText       layout.Color
	DateText           layout.Color
}

// Item is a record prepared for display.
type Item struct {
	Record    Record
	Outgoing  bool
	Sender    string // Label for the sender line
	Date      string // HH:MM in local time
	Size      layout.Size
	Alignment layout.Alignment
	Display   *layout.DisplayAttributes
}

// Conversation is the ordered, newest-first list of items shown in the
// message list. All items live in group 0. It answers the layout engine's
// delegate queries.
type Conversation struct {
	localUserID  string
	sizer        *Sizer
	palette      Palette
	headerHeight int

	items []Item
	index map[string]int
}

// NewConversation creates an empty conversation for localUserID.
func NewConversation(localUserID string, sizer *Sizer, palette Palette) *Conversation {
	return &Conversation{
		localUserID: localUserID,
		sizer:       sizer,
		palette:     palette,
		index:       make(map[string]int),
	}
}

// LocalUserID returns the id whose messages align trailing.
func (c *Conversation) LocalUserID() string {
	return c.localUserID
}

// Sizer returns the sizer used for every item.
func (c *Conversation) Sizer() *Sizer {
	return c.sizer
}

// SetPalette replaces the colors and rebuilds every item's display attributes.
func (c *Conversation) SetPalette(p Palette) {
	c.palette = p
	for i := range c.items {
		c.items[i].Display = c.display(c.items[i])
	}
}

// SetHeaderHeight reserves rows for a header above the group. Zero disables it.
func (c *Conversation) SetHeaderHeight(rows int) {
	c.headerHeight = max(rows, 0)
}

// Len returns the number of items.
func (c *Conversation) Len() int {
	return len(c.items)
}

// Groups returns the number of layout groups. A conversation always has one.
func (c *Conversation) Groups() int {
	return 1
}

// Item returns the item at i, newest first.
func (c *Conversation) Item(i int) (Item, bool) {
	if i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// ItemAt returns the item addressed by an index path.
func (c *Conversation) ItemAt(p layout.IndexPath) (Item, bool) {
	if p.Group != 0 {
		return Item{}, false
	}
	return c.Item(p.Item)
}

// Index returns the position of the item with id.
func (c *Conversation) Index(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Records returns a copy of every record, newest first.
func (c *Conversation) Records() []Record {
	out := make([]Record, len(c.items))
	for i, it := range c.items {
		out[i] = it.Record
	}
	return out
}

func (c *Conversation) ids() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.Record.ID
	}
	return ids
}

// Load replaces every item with records, sorted newest first, and returns
// the updates that turn the previous list into the new one.
func (c *Conversation) Load(records []Record) []layout.UpdateItem {
	before := c.ids()

	sorted := make([]Record, len(records))
	copy(sorted, records)
	SortNewestFirst(sorted)

	c.items = make([]Item, 0, len(sorted))
	seen := make(map[string]bool, len(sorted))
	for _, r := range sorted {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		c.items = append(c.items, c.makeItem(r))
	}
	c.reindex()
	return Diff(before, c.ids())
}

// Insert adds records at the start of the list, one after another, so the
// last record ends up first. Records whose id is already present are skipped.
func (c *Conversation) Insert(records ...Record) []layout.UpdateItem {
	before := c.ids()
	for _, r := range records {
		if _, ok := c.index[r.ID]; ok {
			continue
		}
		c.items = append([]Item{c.makeItem(r)}, c.items...)
		c.reindex()
	}
	return Diff(before, c.ids())
}

// Remove deletes the item with id.
func (c *Conversation) Remove(id string) (Record, []layout.UpdateItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return Record{}, nil, false
	}
	before := c.ids()
	r := c.items[i].Record
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	return r, Diff(before, c.ids()), true
}

// Resize recomputes every item size for a new list width. Returns false when
// the width did not change.
func (c *Conversation) Resize(listWidth int) bool {
	if !c.sizer.SetWidth(listWidth) {
		return false
	}
	for i := range c.items {
		c.items[i] = c.makeItem(c.items[i].Record)
	}
	return true
}

func (c *Conversation) reindex() {
	clear(c.index)
	for i, it := range c.items {
		c.index[it.Record.ID] = i
	}
}

func (c *Conversation) makeItem(r Record) Item {
	it := Item{
		Record:    r,
		Outgoing:  r.IsFrom(c.localUserID),
		Date:      r.Timestamp.Local().Format(DateFormat),
		Alignment: layout.AlignLeading,
	}
	it.Sender = r.SenderName
	if it.Outgoing {
		it.Alignment = layout.AlignTrailing
		it.Sender = "You"
	} else if it.Sender == "" {
		it.Sender = Truncate(r.SenderID, 12)
	}
	it.Size = c.sizer.Size(r, it.Sender)
	it.Display = c.display(it)
	return it
}

func (c *Conversation) display(it Item) *layout.DisplayAttributes {
	d := &layout.DisplayAttributes{
		Size:             it.Size,
		BackgroundColor:  c.palette.IncomingBackground,
		TextColor:        c.palette.IncomingText,
		TextAlignment:    layout.TextAlignLeft,
		DataDetectors:    layout.DetectPhoneNumber | layout.DetectLink,
		DateLabelSize:    layout.Size{Width: DateWidth, Height: 1},
		DateTextColor:    c.palette.DateText,
		DateFont:         layout.FontStyle{Faint: true},
		DateLabelPadding: layout.Insets{Left: 1},
	}
	if it.Outgoing {
		d.BackgroundColor = c.palette.OutgoingBackground
		d.TextColor = c.palette.OutgoingText
		d.TextAlignment = layout.TextAlignRight
		d.DateLabelPadding = layout.Insets{Right: 1}
	}
	return d
}

// SizeForItem implements layout.SizeDelegate.
func (c *Conversation) SizeForItem(p layout.IndexPath) (layout.Size, bool) {
	it, ok := c.ItemAt(p)
	if !ok {
		return layout.Size{}, false
	}
	return it.Size, true
}

// AlignmentForItem implements layout.AlignmentDelegate.
func (c *Conversation) AlignmentForItem(p layout.IndexPath) (layout.Alignment, bool) {
	it, ok := c.ItemAt(p)
	if !ok {
		return layout.AlignLeading, false
	}
	return it.Alignment, true
}

// DisplayAttributes implements layout.DisplayDelegate.
func (c *Conversation) DisplayAttributes(p layout.IndexPath) *layout.DisplayAttributes {
	it, ok := c.ItemAt(p)
	if !ok {
		return nil
	}
	return it.Display
}

// HeaderSize implements layout.HeaderDelegate.
func (c *Conversation) HeaderSize(group int) (layout.Size, bool) {
	if group != 0 || c.headerHeight == 0 {
		return layout.Size{}, false
	}
	return layout.Size{Height: c.headerHeight}, true
}
