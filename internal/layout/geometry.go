package layout

import "fmt"

// Point is a position in layout space. One unit is one terminal cell.
type Point struct {
	X, Y int
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle. It covers the half-open ranges
// [MinX, MaxX) and [MinY, MaxY).
type Rect struct {
	Origin Point
	Size   Size
}

// R is shorthand for building a Rect.
func R(x, y, w, h int) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

func (r Rect) MinX() int { return r.Origin.X }
func (r Rect) MinY() int { return r.Origin.Y }
func (r Rect) MaxX() int { return r.Origin.X + r.Size.Width }
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.Height }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Intersects reports whether r and o share any area. Empty rects never
// intersect anything.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Union returns the smallest rect containing both r and o. An empty operand
// contributes nothing.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	minX, minY := min(r.MinX(), o.MinX()), min(r.MinY(), o.MinY())
	maxX, maxY := max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())
	return R(minX, minY, maxX-minX, maxY-minY)
}

// Offset returns r moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// Insets are distances inward from each edge.
type Insets struct {
	Top, Left, Bottom, Right int
}

// Add returns the component-wise sum of i and o.
func (i Insets) Add(o Insets) Insets {
	return Insets{
		Top:    i.Top + o.Top,
		Left:   i.Left + o.Left,
		Bottom: i.Bottom + o.Bottom,
		Right:  i.Right + o.Right,
	}
}

// Alignment pins an item to one horizontal edge of the content.
type Alignment int

const (
	// AlignLeading places the item against the left inset (other participants).
	AlignLeading Alignment = iota
	// AlignTrailing places the item against the right inset (the local user).
	AlignTrailing
)

func (a Alignment) String() string {
	switch a {
	case AlignTrailing:
		return "trailing"
	default:
		return "leading"
	}
}

// IndexPath addresses an item by group and position within the group.
type IndexPath struct {
	Group int
	Item  int
}

// At is shorthand for IndexPath{Group: group, Item: item}.
func At(group, item int) IndexPath {
	return IndexPath{Group: group, Item: item}
}

// Less orders index paths by group, then item.
func (p IndexPath) Less(o IndexPath) bool {
	if p.Group != o.Group {
		return p.Group < o.Group
	}
	return p.Item < o.Item
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d,%d]", p.Group, p.Item)
}
