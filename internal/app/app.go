package app

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/clipboard"
	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/layout"
	"github.com/zhubert/chatter/internal/logger"
	"github.com/zhubert/chatter/internal/store"
	"github.com/zhubert/chatter/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusComposer Focus = iota
	FocusList
)

func (f Focus) String() string {
	switch f {
	case FocusComposer:
		return "Composer"
	case FocusList:
		return "List"
	default:
		return "Unknown"
	}
}

// Clipboard is the system clipboard as the app uses it.
// clipboard.System implements it.
type Clipboard interface {
	ReadImage() (*clipboard.ImageData, error)
	WriteText(s string) error
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string

	header   *ui.Header
	footer   *ui.Footer
	list     *ui.MessageList
	composer *ui.Composer

	conv  *chat.Conversation
	queue *store.Queue
	clip  Clipboard
	now   func() time.Time

	width  int
	height int
	focus  Focus
	loaded bool

	log *slog.Logger
}

// Options carries the collaborators New wires into the model.
type Options struct {
	Version string
	Queue   *store.Queue
	Loader  ui.ImageLoader
	Clip    Clipboard
	Now     func() time.Time
}

// HistoryLoadedMsg carries the stored conversation fetched at startup
type HistoryLoadedMsg struct {
	Records []chat.Record
	Err     error
}

// StoreResultMsg reports the outcome of a background save or delete
type StoreResultMsg struct {
	Op  string
	ID  string
	Err error
}

// New creates a new app model
func New(cfg *config.Config, opts Options) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	userID, userName := cfg.GetIdentity()
	title, subtitle := cfg.GetConversation()
	lc := cfg.GetLayout()

	sizer := chat.NewSizer(0, lc.MinWidthRatio, lc.MaxWidthRatio, lc.ImageHeight)
	conv := chat.NewConversation(userID, sizer, ui.CurrentTheme().Palette())
	conv.SetHeaderHeight(lc.HeaderHeight)

	m := &Model{
		config:   cfg,
		version:  opts.Version,
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		list:     ui.NewMessageList(conv, LayoutConfig(lc), opts.Loader),
		composer: ui.NewComposer(),
		conv:     conv,
		queue:    opts.Queue,
		clip:     opts.Clip,
		now:      opts.Now,
		focus:    FocusComposer,
		log:      logger.WithComponent("app"),
	}

	m.header.SetConversation(title, subtitle)
	m.header.SetUserName(userName)
	m.composer.SetFocused(true)
	return m
}

// LayoutConfig converts the file settings into engine settings.
func LayoutConfig(lc config.LayoutConfig) layout.Config {
	cfg := layout.DefaultConfig()
	cfg.InterItemSpacing = lc.Spacing
	cfg.SectionInset = layout.Insets{
		Top:    lc.InsetTop,
		Left:   lc.InsetLeft,
		Bottom: lc.InsetBottom,
		Right:  lc.InsetRight,
	}
	if ref, ok := layout.ParseInsetReference(lc.InsetReference); ok {
		cfg.InsetReference = ref
	}
	return cfg
}

// Init starts loading the stored conversation
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.composer.SetFocused(true), m.fetchHistory())
}

func (m *Model) fetchHistory() tea.Cmd {
	if m.queue == nil {
		return func() tea.Msg { return HistoryLoadedMsg{} }
	}
	q := m.queue
	return func() tea.Msg {
		res := <-q.FetchAsync(context.Background())
		return HistoryLoadedMsg{Records: res.Records, Err: res.Err}
	}
}

// saveRecords persists records in order. Each save reports back separately.
func (m *Model) saveRecords(records []chat.Record) tea.Cmd {
	if m.queue == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(records))
	for _, r := range records {
		res := m.queue.SaveAsync(context.Background(), r)
		id := r.ID
		cmds = append(cmds, func() tea.Msg {
			return StoreResultMsg{Op: "save", ID: id, Err: <-res}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) deleteRecord(id string) tea.Cmd {
	if m.queue == nil {
		return nil
	}
	res := m.queue.DeleteAsync(context.Background(), id)
	return func() tea.Msg {
		return StoreResultMsg{Op: "delete", ID: id, Err: <-res}
	}
}

// Focus returns the focused panel
func (m *Model) Focus() Focus {
	return m.focus
}

// Conversation returns the conversation shown in the list
func (m *Model) Conversation() *chat.Conversation {
	return m.conv
}

// Loaded reports whether the stored history has arrived
func (m *Model) Loaded() bool {
	return m.loaded
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	if m.focus == f {
		return nil
	}
	m.log.Debug("focus change", "from", m.focus, "to", f)
	m.focus = f
	m.list.SetFocused(f == FocusList)
	if f != FocusList {
		m.list.ClearSelection()
	}
	return m.composer.SetFocused(f == FocusComposer)
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusComposer {
		return m.setFocus(FocusList)
	}
	return m.setFocus(FocusComposer)
}

// saveConfigOrFlash saves the config and returns a flash command on failure
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		m.log.Error("failed to save config", "error", err)
		return m.ShowFlashError("Failed to save settings")
	}
	return nil
}
