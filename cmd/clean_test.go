package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/store"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"lowercase no", "no\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
		{"yes with spaces", "  yes  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, io.Discard, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	// Test with empty reader (simulates EOF)
	reader := strings.NewReader("")
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(EOF) = %v, want false", result)
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	// Test with a reader that returns an error
	reader := &errorReader{}
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(error) = %v, want false", result)
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

// useTestConfig points --config at a fresh config using a file store under
// a temp dir, and restores the flag afterwards.
func useTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default(filepath.Join(dir, "config.yaml"))
	cfg.SetIdentity("me", "Alice")
	cfg.Store = config.StoreConfig{Backend: config.StoreFile, Path: filepath.Join(dir, "messages.json")}
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	origPath, origEphemeral, origSkip := configPath, ephemeral, skipConfirm
	t.Cleanup(func() { configPath, ephemeral, skipConfirm = origPath, origEphemeral, origSkip })
	configPath = cfg.Path()
	ephemeral = false
	return cfg
}

func seedMessages(t *testing.T, cfg *config.Config, bodies ...string) {
	t.Helper()
	s, err := store.Open(cfg.GetStore())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	for i, body := range bodies {
		if _, err := sendMessage(context.Background(), cfg, s, body, nil, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}
}

func storedCount(t *testing.T, cfg *config.Config) int {
	t.Helper()
	s, err := store.Open(cfg.GetStore())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	records, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return len(records)
}

func TestClean_Aborted(t *testing.T) {
	cfg := useTestConfig(t)
	seedMessages(t, cfg, "one", "two")
	skipConfirm = false

	var out strings.Builder
	if err := runCleanWithReader(strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runClean: %v", err)
	}
	if !strings.Contains(out.String(), "2 message(s)") || !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if storedCount(t, cfg) != 2 {
		t.Error("aborting should keep the history")
	}
}

func TestClean_RemovesHistoryAndAttachments(t *testing.T) {
	cfg := useTestConfig(t)
	seedMessages(t, cfg, "one", "two", "three")

	dir := cfg.AttachmentDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pasted.png"), []byte("png"), 0600); err != nil {
		t.Fatal(err)
	}
	skipConfirm = true

	var out strings.Builder
	if err := runCleanWithReader(strings.NewReader(""), &out); err != nil {
		t.Fatalf("runClean: %v", err)
	}
	if storedCount(t, cfg) != 0 {
		t.Error("history should be empty")
	}
	if _, err := os.Stat(filepath.Join(dir, "pasted.png")); !os.IsNotExist(err) {
		t.Error("attachment should be removed")
	}
	if !strings.Contains(out.String(), "3 message(s) deleted") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
