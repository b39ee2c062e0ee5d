// Package layout positions variable-size message items along a single
// vertical axis.
//
// The Engine asks a Host for the viewport and item counts, and optional
// delegates for per-item sizes and alignment. One layout pass stacks items
// with a monotonically increasing cursor, so the flat item list is always
// sorted by MinY and range queries can binary search it.
package layout

import (
	"log/slog"
	"slices"

	"github.com/zhubert/chatter/internal/logger"
)

// Host is the list view that owns the engine.
type Host interface {
	Bounds() Rect
	ContentInset() Insets
	SafeAreaInsets() Insets
	LayoutMargins() Insets
	NumberOfGroups() int
	NumberOfItems(group int) int
}

// SizeDelegate supplies item sizes. ok=false falls back to Config.DefaultItemSize.
type SizeDelegate interface {
	SizeForItem(at IndexPath) (size Size, ok bool)
}

// AlignmentDelegate supplies item alignment. ok=false means AlignLeading.
type AlignmentDelegate interface {
	AlignmentForItem(at IndexPath) (alignment Alignment, ok bool)
}

// DisplayDelegate supplies the display attributes attached to each item.
type DisplayDelegate interface {
	DisplayAttributes(at IndexPath) *DisplayAttributes
}

// HeaderDelegate supplies group header sizes. ok=false falls back to
// Config.DefaultHeaderSize. Headers with zero height take no space.
type HeaderDelegate interface {
	HeaderSize(group int) (size Size, ok bool)
}

// InsetReference selects which host insets the section insets are added to.
type InsetReference int

const (
	// FromContentInset adds the section inset to the host's content inset.
	FromContentInset InsetReference = iota
	// FromSafeArea adds the safe area, content inset and section inset.
	FromSafeArea
	// FromLayoutMargins adds the section inset to the host's layout margins.
	FromLayoutMargins
)

func (r InsetReference) String() string {
	switch r {
	case FromSafeArea:
		return "safe-area"
	case FromLayoutMargins:
		return "layout-margins"
	default:
		return "content"
	}
}

// ParseInsetReference maps a config value to an InsetReference.
func ParseInsetReference(s string) (InsetReference, bool) {
	switch s {
	case "content", "":
		return FromContentInset, true
	case "safe-area":
		return FromSafeArea, true
	case "layout-margins":
		return FromLayoutMargins, true
	}
	return FromContentInset, false
}

// Config tunes a layout pass.
type Config struct {
	InterItemSpacing  int
	DefaultItemSize   Size
	DefaultHeaderSize Size
	SectionInset      Insets
	InsetReference    InsetReference
	// AppearTranslation is added to an item's height to get the distance an
	// inserted item slides in from.
	AppearTranslation int
}

// DefaultConfig returns the settings used by the conversation screen.
func DefaultConfig() Config {
	return Config{
		InterItemSpacing:  1,
		DefaultItemSize:   Size{Width: 10, Height: 3},
		InsetReference:    FromContentInset,
		AppearTranslation: 2,
	}
}

type header struct {
	frame Rect
	ok    bool
}

// Engine computes and caches item frames. It is not safe for concurrent
// use; the UI goroutine owns it.
type Engine struct {
	host     Host
	delegate any
	cfg      Config

	dirty   bool
	items   []*ItemAttributes   // every item, ascending MinY
	byGroup [][]*ItemAttributes // items[group][item]
	headers []header
	content Rect

	updates       []UpdateItem
	scrollToStart bool

	log *slog.Logger
}

// New creates an engine for host. delegate may implement any of
// SizeDelegate, AlignmentDelegate, DisplayDelegate and HeaderDelegate, or
// none of them.
func New(host Host, delegate any, cfg Config) *Engine {
	return &Engine{
		host:     host,
		delegate: delegate,
		cfg:      cfg,
		dirty:    true,
		log:      logger.WithComponent("layout"),
	}
}

// Config returns the engine settings.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig replaces the settings and invalidates.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
	e.Invalidate()
}

// SetDelegate replaces the delegate and invalidates.
func (e *Engine) SetDelegate(delegate any) {
	e.delegate = delegate
	e.Invalidate()
}

// Invalidate drops every cached frame. Nothing is laid out again until the
// next Prepare.
func (e *Engine) Invalidate() {
	e.items = nil
	e.byGroup = nil
	e.headers = nil
	e.content = Rect{}
	e.dirty = true
}

// Dirty reports whether a Prepare is pending.
func (e *Engine) Dirty() bool {
	return e.dirty
}

// Prepare runs a layout pass if the engine was invalidated.
func (e *Engine) Prepare() {
	if !e.dirty {
		return
	}
	e.layout()
	e.dirty = false
}

// ShouldInvalidateForBoundsChange always returns false. A resize alone keeps
// the cached layout; the host invalidates explicitly when it needs one.
func (e *Engine) ShouldInvalidateForBoundsChange(Rect) bool {
	return false
}

func (e *Engine) layout() {
	bounds := e.host.Bounds()
	e.content = R(0, 0, bounds.Size.Width, bounds.Size.Height)
	contentWidth := bounds.Size.Width
	inset := e.resolvedInsets()

	groups := max(e.host.NumberOfGroups(), 0)
	e.byGroup = make([][]*ItemAttributes, groups)
	e.headers = make([]header, groups)
	e.items = e.items[:0]

	cursor := 0 // bottom edge of the last placed frame
	for g := 0; g < groups; g++ {
		cursor += e.cfg.SectionInset.Top

		if hs := e.headerSize(g); hs.Height > 0 {
			w := hs.Width
			if w <= 0 {
				w = contentWidth - inset.Left - inset.Right
			}
			f := R(inset.Left, cursor, w, hs.Height)
			e.headers[g] = header{frame: f, ok: true}
			e.content = e.content.Union(f)
			cursor = f.MaxY()
		}

		n := max(e.host.NumberOfItems(g), 0)
		group := make([]*ItemAttributes, 0, n)
		for i := 0; i < n; i++ {
			p := At(g, i)
			align := e.alignment(p)
			size := e.size(p)

			x := inset.Left
			if align == AlignTrailing {
				x = contentWidth - (size.Width + inset.Right)
			}
			y := cursor + e.cfg.InterItemSpacing

			a := &ItemAttributes{
				IndexPath: p,
				Frame:     Rect{Origin: Point{X: x, Y: y}, Size: size},
				Alignment: align,
				Alpha:     1,
				Display:   e.display(p),
			}
			group = append(group, a)
			e.items = append(e.items, a)
			e.content = e.content.Union(a.Frame)
			cursor = a.Frame.MaxY()
		}
		e.byGroup[g] = group
	}

	e.log.Debug("layout pass",
		"groups", groups,
		"items", len(e.items),
		"width", e.content.Size.Width,
		"height", e.content.Size.Height)
}

// resolvedInsets combines the section inset with the host inset chosen by
// the inset reference. Only the horizontal edges come from the host.
func (e *Engine) resolvedInsets() Insets {
	section := e.cfg.SectionInset
	var host Insets
	switch e.cfg.InsetReference {
	case FromSafeArea:
		host = e.host.SafeAreaInsets().Add(e.host.ContentInset())
	case FromLayoutMargins:
		host = e.host.LayoutMargins()
	default:
		host = e.host.ContentInset()
	}
	return Insets{
		Top:    section.Top,
		Left:   host.Left + section.Left,
		Bottom: section.Bottom,
		Right:  host.Right + section.Right,
	}
}

func (e *Engine) size(p IndexPath) Size {
	s := e.cfg.DefaultItemSize
	if d, ok := e.delegate.(SizeDelegate); ok {
		if ds, ok := d.SizeForItem(p); ok {
			s = ds
		}
	}
	s.Width = max(s.Width, 0)
	s.Height = max(s.Height, 0)
	return s
}

func (e *Engine) alignment(p IndexPath) Alignment {
	if d, ok := e.delegate.(AlignmentDelegate); ok {
		if a, ok := d.AlignmentForItem(p); ok {
			return a
		}
	}
	return AlignLeading
}

func (e *Engine) display(p IndexPath) *DisplayAttributes {
	if d, ok := e.delegate.(DisplayDelegate); ok {
		return d.DisplayAttributes(p)
	}
	return nil
}

func (e *Engine) headerSize(group int) Size {
	s := e.cfg.DefaultHeaderSize
	if d, ok := e.delegate.(HeaderDelegate); ok {
		if hs, ok := d.HeaderSize(group); ok {
			s = hs
		}
	}
	return s
}

// Len returns the number of laid out items.
func (e *Engine) Len() int {
	return len(e.items)
}

// Attributes returns the cached attributes for p. The result is shared with
// the engine and must not be modified.
func (e *Engine) Attributes(p IndexPath) (*ItemAttributes, bool) {
	if p.Group < 0 || p.Group >= len(e.byGroup) {
		return nil, false
	}
	group := e.byGroup[p.Group]
	if p.Item < 0 || p.Item >= len(group) {
		return nil, false
	}
	return group[p.Item], true
}

// Frame returns the cached frame for p. ok is false when p has not been laid
// out, which is distinct from a zero-size frame.
func (e *Engine) Frame(p IndexPath) (Rect, bool) {
	a, ok := e.Attributes(p)
	if !ok {
		return Rect{}, false
	}
	return a.Frame, true
}

// HeaderFrame returns the frame of group's header, if it has one.
func (e *Engine) HeaderFrame(group int) (Rect, bool) {
	if group < 0 || group >= len(e.headers) || !e.headers[group].ok {
		return Rect{}, false
	}
	return e.headers[group].frame, true
}

// ItemsIntersecting returns, in layout order, every item whose frame
// intersects rect.
func (e *Engine) ItemsIntersecting(rect Rect) []*ItemAttributes {
	if rect.IsEmpty() || len(e.items) == 0 {
		return nil
	}

	// Find any item whose vertical span overlaps rect.
	match, found := slices.BinarySearchFunc(e.items, rect, func(a *ItemAttributes, r Rect) int {
		f := a.Frame
		switch {
		case f.MinY() < r.MaxY() && f.MaxY() > r.MinY():
			return 0
		case f.MinY() >= r.MaxY():
			return 1
		default:
			return -1
		}
	})
	if !found {
		return nil
	}

	// Walk outward from the match until frames leave the query range.
	first := match
	for first > 0 && e.items[first-1].Frame.MaxY() >= rect.MinY() {
		first--
	}
	last := match
	for last+1 < len(e.items) && e.items[last+1].Frame.MinY() <= rect.MaxY() {
		last++
	}

	var result []*ItemAttributes
	for _, a := range e.items[first : last+1] {
		if a.Frame.Intersects(rect) {
			result = append(result, a)
		}
	}
	return result
}

// ContentBounds returns the union of the viewport and every laid out frame.
func (e *Engine) ContentBounds() Rect {
	return e.content
}

// ContentSize returns the scrollable extent.
func (e *Engine) ContentSize() Size {
	return e.content.Size
}
