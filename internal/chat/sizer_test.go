package chat

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSizer_WidthBounds(t *testing.T) {
	tests := []struct {
		listWidth int
		wantMin   int
		wantMax   int
	}{
		{100, 20, 70},
		{80, 16, 56},
		{4, ChromeWidth + 1, ChromeWidth + 1},
	}

	for _, tt := range tests {
		s := NewSizer(tt.listWidth, 0.2, 0.7, 8)
		minW, maxW := s.WidthBounds()
		if minW != tt.wantMin || maxW != tt.wantMax {
			t.Errorf("WidthBounds(%d) = %d,%d want %d,%d", tt.listWidth, minW, maxW, tt.wantMin, tt.wantMax)
		}
	}
}

func TestSizer_Size(t *testing.T) {
	s := NewSizer(100, 0.2, 0.7, 8)
	minW, maxW := s.WidthBounds()

	short := s.Size(Record{Body: "hi"}, "Al")
	if short.Width != minW {
		t.Errorf("short message width = %d, want min %d", short.Width, minW)
	}
	if short.Height != 1+ChromeHeight {
		t.Errorf("short message height = %d, want %d", short.Height, 1+ChromeHeight)
	}

	long := s.Size(Record{Body: strings.Repeat("word ", 60)}, "Al")
	if long.Width != maxW {
		t.Errorf("long message width = %d, want max %d", long.Width, maxW)
	}
	if long.Height <= short.Height {
		t.Error("wrapped message should be taller")
	}

	medium := s.Size(Record{Body: strings.Repeat("x", 30)}, "Al")
	if medium.Width != 30+ChromeWidth {
		t.Errorf("medium width = %d, want %d", medium.Width, 30+ChromeWidth)
	}

	image := s.Size(Record{Body: "hi", ImageRef: "p.png"}, "Al")
	if image.Width != maxW || image.Height != short.Height+8 {
		t.Errorf("image bubble = %+v", image)
	}
}

func TestSizer_WrapRespectsTextWidth(t *testing.T) {
	s := NewSizer(40, 0.2, 0.7, 8)
	body := "a " + strings.Repeat("z", 70) + " tail"

	lines := s.Wrap(body)
	if len(lines) < 3 {
		t.Fatalf("expected the long word to be split, got %d lines", len(lines))
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > s.TextWidth() {
			t.Errorf("line %q is %d wide, limit %d", l, w, s.TextWidth())
		}
	}

	if s.Wrap("   ") != nil {
		t.Error("blank body should produce no lines")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"日本語テキスト", 5, "日本…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRecord(t *testing.T) {
	r := NewRecord("u1", "Ana", "  ", "", at(1))
	if r.ID == "" {
		t.Error("NewRecord should assign an id")
	}
	if r.HasBody() || r.HasImage() {
		t.Error("blank body and no image")
	}
	if !r.IsFrom("u1") || r.IsFrom("u2") {
		t.Error("IsFrom mismatch")
	}
}
