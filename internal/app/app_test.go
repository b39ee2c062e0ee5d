package app

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/clipboard"
	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/layout"
	"github.com/zhubert/chatter/internal/store"
	"github.com/zhubert/chatter/internal/ui"
)

func TestHistoryLoaded(t *testing.T) {
	m, _, _ := testModel(t,
		record("a", "u2", "first", 1),
		record("b", "me", "second", 2),
	)

	if !m.Loaded() {
		t.Fatal("history should be loaded")
	}
	if got := m.Conversation().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	it, _ := m.Conversation().Item(0)
	if it.Record.ID != "b" {
		t.Errorf("newest item = %q, want b", it.Record.ID)
	}
}

func TestHistoryLoadError(t *testing.T) {
	m, _, _ := testModel(t)
	m.Update(HistoryLoadedMsg{Err: os.ErrPermission})

	if !m.footer.HasFlash() {
		t.Error("a failed load should flash a warning")
	}
}

func TestSend(t *testing.T) {
	m, q, _ := testModel(t)

	m.composer.SetValue("hello there")
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := m.Conversation().Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	if m.composer.Value() != "" {
		t.Errorf("composer should be cleared, got %q", m.composer.Value())
	}

	records := stored(t, q)
	if len(records) != 1 {
		t.Fatalf("stored %d records, want 1", len(records))
	}
	r := records[0]
	if r.Body != "hello there" || r.SenderID != "me" || r.SenderName != "Alice" {
		t.Errorf("stored record = %+v", r)
	}
	if !r.Timestamp.Equal(testNow) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, testNow)
	}
}

func TestSend_BeforeHistoryArrives(t *testing.T) {
	q := store.NewQueue(store.NewMemory(record("old", "u2", "earlier", 1)))
	t.Cleanup(func() { _ = q.Close() })

	m := New(testConfig(t), Options{
		Version: "test",
		Queue:   q,
		Now:     func() time.Time { return testNow },
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	// The startup fetch completes before the send reaches the store.
	history := m.fetchHistory()()

	m.composer.SetValue("hello")
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := m.Conversation().Len(); got != 1 {
		t.Fatalf("after send: Len() = %d, want 1", got)
	}

	m.Update(history)

	if got := m.Conversation().Len(); got != 2 {
		t.Fatalf("after history: Len() = %d, want 2", got)
	}
	newest, _ := m.Conversation().Item(0)
	oldest, _ := m.Conversation().Item(1)
	if newest.Record.Body != "hello" || oldest.Record.ID != "old" {
		t.Errorf("order = %q, %q; want hello then old", newest.Record.Body, oldest.Record.ID)
	}
	if len(stored(t, q)) != 2 {
		t.Error("both messages should be stored")
	}
}

func TestMergeHistory(t *testing.T) {
	loaded := []chat.Record{record("b", "u2", "stored", 2), record("a", "u2", "stored", 1)}
	shown := []chat.Record{record("c", "me", "sent", 3), record("b", "u2", "edited", 2)}

	got := mergeHistory(loaded, shown)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, r := range got {
		if r.ID == "b" && r.Body != "edited" {
			t.Errorf("on-screen copy of b should win, got %q", r.Body)
		}
	}
	if same := mergeHistory(loaded, nil); len(same) != 2 {
		t.Errorf("nothing shown should return loaded as is, got %d", len(same))
	}
}

func TestSend_Empty(t *testing.T) {
	m, q, _ := testModel(t)

	m.composer.SetValue("   ")
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if cmd != nil {
		t.Error("sending nothing should not produce a command")
	}
	if m.Conversation().Len() != 0 || len(stored(t, q)) != 0 {
		t.Error("nothing should be sent")
	}
}

func TestSend_WithAttachments(t *testing.T) {
	m, q, _ := testModel(t)

	m.composer.SetValue("look")
	m.composer.AddAttachment("/tmp/a.png")
	m.composer.AddAttachment("/tmp/b.png")
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := m.Conversation().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	newest, _ := m.Conversation().Item(0)
	if newest.Record.ImageRef != "/tmp/b.png" || newest.Record.Body != "" {
		t.Errorf("newest = %+v, want image-only b.png", newest.Record)
	}
	oldest, _ := m.Conversation().Item(1)
	if oldest.Record.ImageRef != "/tmp/a.png" || oldest.Record.Body != "look" {
		t.Errorf("oldest = %+v, want text with a.png", oldest.Record)
	}
	if m.composer.HasAttachments() {
		t.Error("attachments should be cleared after send")
	}

	records := stored(t, q)
	if len(records) != 2 || records[0].ID != newest.Record.ID {
		t.Errorf("stored order does not match the list: %+v", records)
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPasteImage(t *testing.T) {
	m, _, clip := testModel(t)
	clip.image = &clipboard.ImageData{Data: encodePNG(t, 4, 3), Width: 4, Height: 3}

	m.Update(tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl})

	atts := m.composer.Attachments()
	if len(atts) != 1 {
		t.Fatalf("Attachments() = %v, want one", atts)
	}
	if !strings.HasPrefix(atts[0], m.config.AttachmentDir()) {
		t.Errorf("attachment %q not under %q", atts[0], m.config.AttachmentDir())
	}
	if _, err := os.Stat(atts[0]); err != nil {
		t.Errorf("attachment not written: %v", err)
	}
	if !m.footer.HasFlash() {
		t.Error("expected a success flash")
	}

	m.Update(tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	if m.composer.HasAttachments() {
		t.Error("ctrl+x should clear attachments")
	}
}

func TestPasteImage_Empty(t *testing.T) {
	m, _, _ := testModel(t)

	if cmd := m.pasteImage(false); cmd != nil {
		t.Error("a silent paste without an image should do nothing")
	}
	if m.footer.HasFlash() {
		t.Error("a silent paste should not flash")
	}

	m.Update(tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl})
	if !m.footer.HasFlash() {
		t.Error("ctrl+v without an image should say so")
	}
	if m.composer.HasAttachments() {
		t.Error("nothing should be attached")
	}
}

func TestPasteImage_Error(t *testing.T) {
	m, _, clip := testModel(t)
	clip.readErr = errClipboard

	m.Update(tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl})
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
	if m.composer.HasAttachments() {
		t.Error("nothing should be attached")
	}
}

func TestToggleFocus(t *testing.T) {
	m, _, _ := testModel(t)

	if m.Focus() != FocusComposer {
		t.Fatalf("initial focus = %v, want composer", m.Focus())
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Focus() != FocusList || !m.list.IsFocused() || m.composer.IsFocused() {
		t.Error("tab should focus the list")
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Focus() != FocusComposer || m.list.IsFocused() || !m.composer.IsFocused() {
		t.Error("tab should focus the composer again")
	}
}

func TestCopySelected(t *testing.T) {
	m, _, clip := testModel(t,
		record("a", "u2", "older text", 1),
		record("b", "u2", "newest text", 2),
	)

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m.Update(keyPress("c"))

	if clip.text != "newest text" {
		t.Errorf("copied %q, want %q", clip.text, "newest text")
	}
}

func TestCopyText_ImageOnly(t *testing.T) {
	m, _, _ := testModel(t)
	r := record("p", "u2", "", 1)
	r.ImageRef = "https://example.com/cat.png"
	m.list.Load(nil)
	m.list.Insert(r)

	it, _ := m.Conversation().Item(0)
	if got := copyText(it); got != r.ImageRef {
		t.Errorf("copyText() = %q, want the image ref", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	m, q, _ := testModel(t,
		record("a", "u2", "keep", 1),
		record("b", "u2", "remove", 2),
	)

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m.Update(keyPress("d"))

	if got := m.Conversation().Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	records := stored(t, q)
	if len(records) != 1 || records[0].ID != "a" {
		t.Errorf("stored = %+v, want only a", records)
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	m, _, _ := testModel(t, record("a", "u2", "keep", 1))

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	m.Update(keyPress("d"))

	if m.Conversation().Len() != 1 {
		t.Error("delete without a selection should do nothing")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _, _ := testModel(t)

	// q types into the composer
	m.Update(keyPress("q"))
	if m.composer.Value() != "q" {
		t.Errorf("composer = %q, want q typed", m.composer.Value())
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if _, cmd := m.Update(keyPress("q")); !isQuit(cmd) {
		t.Error("q should quit from the list")
	}
	if _, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}); !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRenderToString(t *testing.T) {
	m, _, _ := testModel(t)

	view := m.RenderToString()
	if !strings.Contains(view, "Tech Hub") {
		t.Error("header should show the conversation title")
	}
	if !strings.Contains(view, "No messages yet") {
		t.Error("empty list should say so")
	}
	if !strings.Contains(view, "send") {
		t.Error("footer should show key hints")
	}
}

func TestCycleTheme(t *testing.T) {
	m, _, _ := testModel(t)
	defer ui.SetTheme(ui.DefaultTheme)

	before := ui.CurrentThemeName()
	m.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	if ui.CurrentThemeName() == before {
		t.Error("ctrl+t should switch theme")
	}
	if m.config.GetTheme() != string(ui.CurrentThemeName()) {
		t.Errorf("config theme = %q, want %q", m.config.GetTheme(), ui.CurrentThemeName())
	}
	if _, err := os.Stat(m.config.Path()); err != nil {
		t.Errorf("config should be saved: %v", err)
	}
}

func TestLayoutConfig(t *testing.T) {
	lc := config.DefaultLayout()
	lc.Spacing = 2
	lc.InsetLeft = 3
	lc.InsetReference = config.InsetFromLayoutMargins

	got := LayoutConfig(lc)
	if got.InterItemSpacing != 2 {
		t.Errorf("InterItemSpacing = %d, want 2", got.InterItemSpacing)
	}
	if got.SectionInset.Left != 3 {
		t.Errorf("SectionInset.Left = %d, want 3", got.SectionInset.Left)
	}
	if got.InsetReference != layout.FromLayoutMargins {
		t.Errorf("InsetReference = %v, want layout margins", got.InsetReference)
	}
}
