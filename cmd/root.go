package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/chatter/internal/app"
	"github.com/zhubert/chatter/internal/clipboard"
	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/logger"
	"github.com/zhubert/chatter/internal/media"
	"github.com/zhubert/chatter/internal/store"
)

var (
	debugMode             bool
	quietMode             bool
	ephemeral             bool
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "chatter",
	Short: "Terminal chat with message bubbles",
	Long: `Chatter is a terminal chat client. Messages are laid out as bubbles,
newest at the bottom, with pasted images shown inline.

History is stored locally; run 'chatter init' to set your name first.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.chatter/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep history in memory only for this run")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("chatter %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("chatter %s\n", version)
}

// loadConfig reads the config named by --config and applies --ephemeral
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if ephemeral {
		cfg.UseMemoryStore()
	}
	return cfg, nil
}

// openQueue opens the configured store behind a queue
func openQueue(cfg *config.Config) (*store.Queue, error) {
	s, err := store.Open(cfg.GetStore())
	if err != nil {
		return nil, fmt.Errorf("error opening message store: %w", err)
	}
	return store.NewQueue(s), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	q, err := openQueue(cfg)
	if err != nil {
		return err
	}
	defer q.Close()

	var clip app.Clipboard
	if err := clipboard.Init(); err != nil {
		logger.WithComponent("cmd").Warn("clipboard unavailable", "error", err)
	} else {
		clip = clipboard.System{}
	}

	m := app.New(cfg, app.Options{
		Version: version,
		Queue:   q,
		Loader:  media.NewLoader(media.DefaultTimeout),
		Clip:    clip,
	})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
