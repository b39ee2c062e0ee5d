package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	perrors "github.com/zhubert/chatter/internal/errors"
	"github.com/zhubert/chatter/internal/logger"
)

// Store backends understood by the store package.
const (
	StorePebble = "pebble"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// Inset references understood by the layout engine.
const (
	InsetFromContentInset  = "content"
	InsetFromSafeArea      = "safe-area"
	InsetFromLayoutMargins = "layout-margins"
)

const (
	configDirName  = ".chatter"
	configFileName = "config.yaml"
)

// StoreConfig selects where message history lives.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"` // pebble, file or memory
	Path    string `yaml:"path,omitempty"`    // Directory (pebble) or file (file); derived from the data dir when empty
}

// LayoutConfig tunes the message list geometry. Units are terminal cells.
type LayoutConfig struct {
	Spacing        int     `yaml:"spacing"`
	InsetTop       int     `yaml:"inset_top"`
	InsetLeft      int     `yaml:"inset_left"`
	InsetBottom    int     `yaml:"inset_bottom"`
	InsetRight     int     `yaml:"inset_right"`
	InsetReference string  `yaml:"inset_reference,omitempty"`
	MinWidthRatio  float64 `yaml:"min_width_ratio"`
	MaxWidthRatio  float64 `yaml:"max_width_ratio"`
	ImageHeight    int     `yaml:"image_height"`
	HeaderHeight   int     `yaml:"header_height"`
}

// Config holds the application configuration
type Config struct {
	UserID   string `yaml:"user_id"`
	UserName string `yaml:"user_name"`

	Title    string `yaml:"title,omitempty"`    // Conversation title shown in the header
	Subtitle string `yaml:"subtitle,omitempty"` // Secondary header line (e.g. member count)
	Theme    string `yaml:"theme,omitempty"`    // UI theme name (e.g., "dark-purple", "nord")

	DataDir string       `yaml:"data_dir,omitempty"`
	Store   StoreConfig  `yaml:"store"`
	Layout  LayoutConfig `yaml:"layout"`

	mu       sync.RWMutex
	filePath string
}

// DefaultLayout returns the layout settings used when the file omits them.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Spacing:        1,
		InsetTop:       1,
		InsetLeft:      1,
		InsetBottom:    1,
		InsetRight:     1,
		InsetReference: InsetFromContentInset,
		MinWidthRatio:  0.2,
		MaxWidthRatio:  0.7,
		ImageHeight:    8,
	}
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func defaults(path string) *Config {
	return &Config{
		Title:    "Tech Hub",
		Subtitle: "1.2k members",
		Layout:   DefaultLayout(),
		filePath: path,
	}
}

// Default returns a config with every field populated, bound to path.
func Default(path string) *Config {
	cfg := defaults(path)
	cfg.ensureInitialized()
	return cfg
}

// Load reads the config from path (the default location when empty), or
// returns defaults if it doesn't exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, perrors.ConfigLoadFailed("~", err)
		}
		path = p
	}

	cfg := defaults(path)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: defaults plus environment
	case err != nil:
		return nil, perrors.ConfigLoadFailed(path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, perrors.ConfigLoadFailed(path, err)
		}
	}

	cfg.applyEnv()

	if cfg.UserID == "" {
		// A generated id is written back so later runs keep the same identity.
		cfg.UserID = uuid.New().String()
		if err := persistUserID(path, data, cfg.UserID); err != nil {
			logger.WithComponent("config").Warn("could not save generated user id", "path", path, "error", err)
		}
	}

	// Ensure derived fields are filled before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// persistUserID writes id into the config file at path, keeping whatever the
// file already holds (data) and leaving environment overrides out of it.
func persistUserID(path string, data []byte, id string) error {
	onDisk := defaults(path)
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, onDisk); err != nil {
			return err
		}
	}
	onDisk.UserID = id
	return onDisk.Save()
}

// ensureInitialized fills zero-valued fields with defaults.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from Load() before the Config
// is shared across goroutines).
func (c *Config) ensureInitialized() {
	if c.UserID == "" {
		c.UserID = uuid.New().String()
	}
	if c.UserName == "" {
		c.UserName = defaultUserName()
	}
	if c.DataDir == "" && c.filePath != "" {
		c.DataDir = filepath.Join(filepath.Dir(c.filePath), "data")
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StorePebble
	}
	if c.Store.Path == "" && c.DataDir != "" {
		switch c.Store.Backend {
		case StorePebble:
			c.Store.Path = filepath.Join(c.DataDir, "messages.db")
		case StoreFile:
			c.Store.Path = filepath.Join(c.DataDir, "messages.json")
		}
	}

	d := DefaultLayout()
	if c.Layout.InsetReference == "" {
		c.Layout.InsetReference = d.InsetReference
	}
	if c.Layout.MinWidthRatio == 0 {
		c.Layout.MinWidthRatio = d.MinWidthRatio
	}
	if c.Layout.MaxWidthRatio == 0 {
		c.Layout.MaxWidthRatio = d.MaxWidthRatio
	}
	if c.Layout.ImageHeight == 0 {
		c.Layout.ImageHeight = d.ImageHeight
	}
}

func defaultUserName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "me"
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.UserID == "" {
		return perrors.ConfigInvalid("user_id is required")
	}

	switch c.Store.Backend {
	case StorePebble, StoreFile:
		if c.Store.Path == "" {
			return perrors.ConfigInvalid(fmt.Sprintf("store %q needs a path", c.Store.Backend))
		}
	case StoreMemory:
	default:
		return perrors.ConfigInvalid(fmt.Sprintf("unknown store backend %q", c.Store.Backend))
	}

	switch c.Layout.InsetReference {
	case InsetFromContentInset, InsetFromSafeArea, InsetFromLayoutMargins:
	default:
		return perrors.ConfigInvalid(fmt.Sprintf("unknown inset reference %q", c.Layout.InsetReference))
	}

	l := c.Layout
	if l.Spacing < 0 || l.InsetTop < 0 || l.InsetLeft < 0 || l.InsetBottom < 0 || l.InsetRight < 0 {
		return perrors.ConfigInvalid("layout spacing and insets must not be negative")
	}
	if l.MinWidthRatio <= 0 || l.MaxWidthRatio > 1 || l.MinWidthRatio > l.MaxWidthRatio {
		return perrors.ConfigInvalid(fmt.Sprintf("width ratios must satisfy 0 < min <= max <= 1, got %.2f/%.2f",
			l.MinWidthRatio, l.MaxWidthRatio))
	}
	if l.ImageHeight < 1 || l.HeaderHeight < 0 {
		return perrors.ConfigInvalid("image_height must be positive and header_height non-negative")
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file this config was loaded from
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetIdentity returns the local user's id and display name
func (c *Config) GetIdentity() (id, name string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.UserID, c.UserName
}

// SetIdentity sets the local user's id and display name
func (c *Config) SetIdentity(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != "" {
		c.UserID = id
	}
	if name != "" {
		c.UserName = name
	}
}

// GetConversation returns the header title and subtitle
func (c *Config) GetConversation() (title, subtitle string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Title, c.Subtitle
}

// SetConversation sets the header title and subtitle
func (c *Config) SetConversation(title, subtitle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Title = title
	c.Subtitle = subtitle
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetStore returns a copy of the store settings
func (c *Config) GetStore() StoreConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Store
}

// UseMemoryStore switches to an ephemeral store for this run
func (c *Config) UseMemoryStore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Store = StoreConfig{Backend: StoreMemory}
}

// GetLayout returns a copy of the layout settings
func (c *Config) GetLayout() LayoutConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Layout
}

// GetDataDir returns the directory holding history and saved attachments
func (c *Config) GetDataDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DataDir
}

// AttachmentDir returns the directory pasted images are written to
func (c *Config) AttachmentDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.DataDir == "" {
		return filepath.Join(os.TempDir(), "chatter-attachments")
	}
	return filepath.Join(c.DataDir, "attachments")
}
