package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/chatter/internal/config"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"simple", "Alice", false},
		{"unicode", "Zoë 🚀", false},
		{"at limit", strings.Repeat("é", 40), false},
		{"too long", strings.Repeat("a", 41), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestApplyInitAnswers_KeepsUserID(t *testing.T) {
	cfg := config.Default(filepath.Join(t.TempDir(), "config.yaml"))
	cfg.SetIdentity("user-1", "Old")

	applyInitAnswers(cfg, initAnswers{Name: "Alice", Title: "Team", Subtitle: "3 members", Theme: "nord"})

	id, name := cfg.GetIdentity()
	if id != "user-1" || name != "Alice" {
		t.Errorf("identity = %q/%q, want user-1/Alice", id, name)
	}
	title, subtitle := cfg.GetConversation()
	if title != "Team" || subtitle != "3 members" {
		t.Errorf("conversation = %q/%q", title, subtitle)
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("theme = %q, want nord", cfg.GetTheme())
	}
}
