package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	perrors "github.com/zhubert/chatter/internal/errors"
)

// clearEnv blanks every override so the host environment can't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvUserID, EnvUserName, EnvDataDir, EnvStore} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.UserID == "" {
		t.Error("expected a generated user id")
	}
	if cfg.Title != "Tech Hub" || cfg.Subtitle != "1.2k members" {
		t.Errorf("unexpected header defaults: %q / %q", cfg.Title, cfg.Subtitle)
	}
	if cfg.Store.Backend != StorePebble {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StorePebble)
	}
	wantStore := filepath.Join(filepath.Dir(path), "data", "messages.db")
	if cfg.Store.Path != wantStore {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, wantStore)
	}
	if cfg.Layout != DefaultLayout() {
		t.Errorf("Layout = %+v, want %+v", cfg.Layout, DefaultLayout())
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoad_GeneratedUserIDIsKept(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	id1, _ := first.GetIdentity()
	id2, _ := second.GetIdentity()
	if id1 == "" || id1 != id2 {
		t.Errorf("user id changed between loads: %q then %q", id1, id2)
	}
}

func TestLoad_GeneratedUserIDKeepsFileAndSkipsEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("title: Gophers\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvUserName, "Env Name")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "user_id: "+cfg.UserID) {
		t.Errorf("generated id not written:\n%s", content)
	}
	if !strings.Contains(content, "title: Gophers") {
		t.Errorf("existing settings lost:\n%s", content)
	}
	if strings.Contains(content, "Env Name") {
		t.Errorf("environment override written to the file:\n%s", content)
	}
}

func TestLoad_EnvUserIDIsNotPersisted(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvUserID, "env-user")
	path := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("no file should be written when the id comes from the environment, stat err = %v", err)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default(path)
	cfg.SetIdentity("user-1", "Ada")
	cfg.SetConversation("Gophers", "12 members")
	cfg.SetTheme("nord")
	cfg.Layout.Spacing = 2

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	id, name := loaded.GetIdentity()
	if id != "user-1" || name != "Ada" {
		t.Errorf("identity = %q/%q, want user-1/Ada", id, name)
	}
	title, subtitle := loaded.GetConversation()
	if title != "Gophers" || subtitle != "12 members" {
		t.Errorf("conversation = %q/%q", title, subtitle)
	}
	if loaded.GetTheme() != "nord" {
		t.Errorf("theme = %q, want nord", loaded.GetTheme())
	}
	if loaded.GetLayout().Spacing != 2 {
		t.Errorf("spacing = %d, want 2", loaded.GetLayout().Spacing)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "user_id: abc\nstore:\n  backend: file\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UserID != "abc" {
		t.Errorf("UserID = %q, want abc", cfg.UserID)
	}
	if !strings.HasSuffix(cfg.Store.Path, "messages.json") {
		t.Errorf("file store path = %q, want messages.json", cfg.Store.Path)
	}
	if cfg.Layout.MaxWidthRatio != 0.7 {
		t.Errorf("MaxWidthRatio = %v, want 0.7", cfg.Layout.MaxWidthRatio)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("user_id: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !perrors.Is(err, perrors.KindConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()
	t.Setenv(EnvUserID, "env-user")
	t.Setenv(EnvUserName, "Env Name")
	t.Setenv(EnvDataDir, dataDir)
	t.Setenv(EnvStore, StoreFile)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	id, name := cfg.GetIdentity()
	if id != "env-user" || name != "Env Name" {
		t.Errorf("identity = %q/%q", id, name)
	}
	if cfg.GetDataDir() != dataDir {
		t.Errorf("DataDir = %q, want %q", cfg.GetDataDir(), dataDir)
	}
	want := filepath.Join(dataDir, "messages.json")
	if got := cfg.GetStore(); got.Backend != StoreFile || got.Path != want {
		t.Errorf("store = %+v, want file at %q", got, want)
	}
	if got := cfg.AttachmentDir(); got != filepath.Join(dataDir, "attachments") {
		t.Errorf("AttachmentDir() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"memory store needs no path", func(c *Config) { c.Store = StoreConfig{Backend: StoreMemory} }, false},
		{"empty user id", func(c *Config) { c.UserID = "" }, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"pebble without path", func(c *Config) { c.Store.Path = "" }, true},
		{"unknown inset reference", func(c *Config) { c.Layout.InsetReference = "nowhere" }, true},
		{"negative spacing", func(c *Config) { c.Layout.Spacing = -1 }, true},
		{"min above max", func(c *Config) { c.Layout.MinWidthRatio = 0.9 }, true},
		{"max above one", func(c *Config) { c.Layout.MaxWidthRatio = 1.5 }, true},
		{"zero image height", func(c *Config) { c.Layout.ImageHeight = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(filepath.Join(t.TempDir(), "config.yaml"))
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !perrors.Is(err, perrors.KindInvalid) {
				t.Errorf("expected KindInvalid, got %v", perrors.GetKind(err))
			}
		})
	}
}

func TestUseMemoryStore(t *testing.T) {
	cfg := Default(filepath.Join(t.TempDir(), "config.yaml"))
	cfg.UseMemoryStore()

	if got := cfg.GetStore(); got.Backend != StoreMemory || got.Path != "" {
		t.Errorf("GetStore() = %+v, want memory", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestSetIdentity_IgnoresEmpty(t *testing.T) {
	cfg := Default(filepath.Join(t.TempDir(), "config.yaml"))
	cfg.SetIdentity("u1", "One")
	cfg.SetIdentity("", "")

	id, name := cfg.GetIdentity()
	if id != "u1" || name != "One" {
		t.Errorf("identity = %q/%q, want u1/One", id, name)
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := Default(filepath.Join(t.TempDir(), "config.yaml"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetTheme("nord")
			cfg.SetConversation("a", "b")
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetTheme()
			_, _ = cfg.GetConversation()
			_ = cfg.GetLayout()
		}()
	}
	wg.Wait()
}
