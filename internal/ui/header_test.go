package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Tech Hub", "TH"},
		{"tech hub central", "TH"},
		{"Solo", "S"},
		{"  spaced   out  ", "SO"},
		{"#general chat", "GC"},
		{"émile zola", "ÉZ"},
		{"", "?"},
		{"   ", "?"},
		{"!!! ???", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initials(tt.name); got != tt.expected {
				t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestHeader_View(t *testing.T) {
	header := NewHeader()
	header.SetWidth(60)
	header.SetConversation("Tech Hub", "1.2k members")
	header.SetUserName("ana")

	view := stripANSI(header.View())

	for _, want := range []string{"(TH)", "Tech Hub", "1.2k members", "ana"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected header to contain %q, got %q", want, view)
		}
	}
	if w := ansi.StringWidth(view); w != 60 {
		t.Errorf("Expected header width 60, got %d", w)
	}
}

func TestHeader_View_NoSubtitle(t *testing.T) {
	header := NewHeader()
	header.SetWidth(40)
	header.SetConversation("Tech Hub", "")

	view := stripANSI(header.View())
	if strings.Contains(view, "·") {
		t.Errorf("Expected no separator without a subtitle, got %q", view)
	}
}

func TestHeader_View_Truncates(t *testing.T) {
	header := NewHeader()
	header.SetWidth(20)
	header.SetConversation("A very long conversation title", "with a subtitle")
	header.SetUserName("me")

	view := stripANSI(header.View())
	if w := ansi.StringWidth(view); w != 20 {
		t.Errorf("Expected header width 20, got %d (%q)", w, view)
	}
	if !strings.HasSuffix(view, "me ") {
		t.Errorf("Expected user name kept on the right, got %q", view)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#7C3AED", 0x7C, 0x3A, 0xED},
		{"#000000", 0, 0, 0},
		{"#FFFFFF", 255, 255, 255},
		{"invalid", 0, 0, 0},
		{"", 0, 0, 0},
	}

	for _, tt := range tests {
		r, g, b := parseHexColor(tt.hex)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.hex, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
