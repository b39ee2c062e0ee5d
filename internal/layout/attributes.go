package layout

// Color is a terminal color in any form lipgloss accepts ("#7D56F4", "212").
// The empty string means the terminal default.
type Color string

// FontStyle is the terminal equivalent of a font: the attributes a cell can carry.
type FontStyle struct {
	Bold   bool
	Italic bool
	Faint  bool
}

// TextAlignment positions text inside its bubble.
type TextAlignment int

const (
	TextAlignLeft TextAlignment = iota
	TextAlignCenter
	TextAlignRight
)

// DataDetectors is a bit set of content kinds to highlight inside a body.
type DataDetectors uint8

const (
	DetectPhoneNumber DataDetectors = 1 << iota
	DetectLink
)

// Has reports whether every detector in d2 is enabled in d.
func (d DataDetectors) Has(d2 DataDetectors) bool {
	return d&d2 == d2
}

// DisplayAttributes describes how a laid out item is drawn. It is compared
// between layout passes to decide whether a cached rendering can be reused.
type DisplayAttributes struct {
	Size             Size
	BackgroundColor  Color
	TextColor        Color
	Font             FontStyle
	TextAlignment    TextAlignment
	DataDetectors    DataDetectors
	DateLabelSize    Size
	DateTextColor    Color
	DateFont         FontStyle
	DateLabelPadding Insets
}

// Equal reports whether every field of d and o matches. A nil value is
// never equal to anything, including another nil.
func (d *DisplayAttributes) Equal(o *DisplayAttributes) bool {
	if d == nil || o == nil {
		return false
	}
	return *d == *o
}

// ItemAttributes is the computed placement of one item.
type ItemAttributes struct {
	IndexPath IndexPath
	Frame     Rect
	Alignment Alignment

	// Alpha is 1 for fully visible items; appearing items start lower.
	Alpha float64
	// TranslateY displaces the item from its frame by this many rows
	// toward the start of the layout, where the newest items sit. Used while
	// an insertion animates in.
	TranslateY int

	Display *DisplayAttributes
}

// Copy returns a shallow copy. Display attributes are shared, they are
// treated as immutable once handed to the engine.
func (a *ItemAttributes) Copy() *ItemAttributes {
	c := *a
	return &c
}

// Equal reports whether a and o would render identically. The index path
// is not compared.
func (a *ItemAttributes) Equal(o *ItemAttributes) bool {
	if a == nil || o == nil {
		return false
	}
	return a.Frame == o.Frame &&
		a.Alignment == o.Alignment &&
		a.Alpha == o.Alpha &&
		a.TranslateY == o.TranslateY &&
		a.Display.Equal(o.Display)
}
