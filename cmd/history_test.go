package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/zhubert/chatter/internal/chat"
)

func historyRecord(id, sender, name, body, image string, ts time.Time) chat.Record {
	return chat.Record{ID: id, SenderID: sender, SenderName: name, Body: body, ImageRef: image, Timestamp: ts}
}

func TestPrintHistory_Empty(t *testing.T) {
	var out strings.Builder
	printHistory(&out, nil, "me", 10)
	if out.String() != "No messages.\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestPrintHistory_NewestLimitOldestFirst(t *testing.T) {
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	// Stored order is newest first.
	records := []chat.Record{
		historyRecord("c", "bob", "Bob", "third", "", base.Add(2*time.Minute)),
		historyRecord("b", "me", "Alice", "second", "", base.Add(time.Minute)),
		historyRecord("a", "bob", "Bob", "first", "", base),
	}

	var out strings.Builder
	printHistory(&out, records, "me", 2)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "second") || !strings.Contains(lines[1], "third") {
		t.Errorf("lines out of order:\n%s", out.String())
	}
	if records[0].ID != "c" {
		t.Error("printHistory must not reorder the caller's slice")
	}
}

func TestPrintHistory_ZeroLimitPrintsAll(t *testing.T) {
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	records := []chat.Record{
		historyRecord("b", "bob", "Bob", "two", "", base.Add(time.Minute)),
		historyRecord("a", "bob", "Bob", "one", "", base),
	}

	var out strings.Builder
	printHistory(&out, records, "me", 0)
	if n := strings.Count(out.String(), "\n"); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}

func TestHistoryLine(t *testing.T) {
	ts := time.Now().Add(-3 * time.Hour)

	mine := historyLine(historyRecord("id-1", "me", "Alice", "hello", "", ts), "me")
	if !strings.Contains(mine, "You") || strings.Contains(mine, "Alice") {
		t.Errorf("local sender should print as You: %q", mine)
	}
	if !strings.Contains(mine, "hello") || !strings.Contains(mine, "id-1") || !strings.Contains(mine, "3 hours ago") {
		t.Errorf("unexpected line: %q", mine)
	}

	anon := historyLine(historyRecord("id-2", "u-42", "", "", "/tmp/a.png", ts), "me")
	if !strings.Contains(anon, "u-42") {
		t.Errorf("missing sender name should fall back to id: %q", anon)
	}
	if !strings.Contains(anon, "[image: /tmp/a.png]") {
		t.Errorf("image ref missing: %q", anon)
	}
}
