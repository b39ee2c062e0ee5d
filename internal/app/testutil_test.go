package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/clipboard"
	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/store"
)

type fakeClipboard struct {
	image   *clipboard.ImageData
	readErr error
	text    string
}

func (f *fakeClipboard) ReadImage() (*clipboard.ImageData, error) {
	return f.image, f.readErr
}

func (f *fakeClipboard) WriteText(s string) error {
	f.text = s
	return nil
}

var errClipboard = errors.New("clipboard locked")

// testConfig creates a config bound to a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default(filepath.Join(t.TempDir(), "config.yaml"))
	cfg.SetIdentity("me", "Alice")
	return cfg
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// testModel creates a sized model over a memory store holding records, with
// the history already loaded.
func testModel(t *testing.T, records ...chat.Record) (*Model, *store.Queue, *fakeClipboard) {
	t.Helper()
	q := store.NewQueue(store.NewMemory(records...))
	t.Cleanup(func() { _ = q.Close() })

	clip := &fakeClipboard{}
	m := New(testConfig(t), Options{
		Version: "test",
		Queue:   q,
		Clip:    clip,
		Now:     func() time.Time { return testNow },
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Update(m.fetchHistory()())
	return m, q, clip
}

func stored(t *testing.T, q *store.Queue) []chat.Record {
	t.Helper()
	records, err := q.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	return records
}

func record(id, sender, body string, minute int) chat.Record {
	return chat.Record{
		ID:        id,
		SenderID:  sender,
		Body:      body,
		Timestamp: testNow.Add(time.Duration(minute-60) * time.Minute),
	}
}

func keyPress(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}
