// Package tui is the interactive project board.
//
// All board state (store, coordinator, reconciler and notification center)
// is mutated only from Update. Remote calls run inside tea.Cmds and come back
// as messages, which is how the coordinator's single-goroutine rule is kept.
package tui

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/dnd"
	"github.com/thenoetrevino/quadro/internal/notify"
	"github.com/thenoetrevino/quadro/internal/tui/state"
)

const (
	// cardHeight is the rendered height of one card: four lines plus border
	cardHeight = 6

	// notificationPoll is how often expired notifications are pruned
	notificationPoll = 500 * time.Millisecond
)

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	timeout time.Duration
	title   string

	store *board.Store
	coord *board.Coordinator
	recon *dnd.Reconciler
	notes *notify.Center

	keys   KeyMap
	help   help.Model
	styles Styles
	ui     *state.UIState

	loaded  bool // the first reload has been applied
	ticking bool // a notification prune tick is scheduled
	resync  bool // a reload is owed once the current drag ends
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used to age notifications.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.notes.WithClock(now)
	}
}

// WithTitle replaces the board title shown in the header.
func WithTitle(title string) Option {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

// New creates a board model reading and writing projects through remote.
func New(ctx context.Context, cfg *config.Config, remote board.Remote, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	notes := notify.NewCenter(cfg.NotificationTTL())
	store := board.NewStore()
	coord := board.NewCoordinator(store, remote, notes, board.WithLogger(slog.Default()))

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:     ctx,
		cfg:     cfg,
		timeout: cfg.RequestTimeout(),
		title:   "quadro",
		store:   store,
		coord:   coord,
		recon:   dnd.NewReconciler(coord),
		notes:   notes,
		keys:    NewKeyMap(cfg.KeyMappings),
		help:    h,
		styles:  NewStyles(cfg.ColorScheme),
		ui:      state.NewUIState(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the board and starts the periodic refresh, if configured.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reloadCmd(false), m.refreshTick())
}

// Store exposes the board for inspection.
func (m Model) Store() *board.Store {
	return m.store
}

// Notifications returns the notifications currently on screen.
func (m Model) Notifications() []notify.Notification {
	return m.notes.Active()
}

// Loaded reports whether the board has been fetched at least once.
func (m Model) Loaded() bool {
	return m.loaded
}

// Run starts the board program and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, remote board.Remote, opts ...Option) error {
	p := tea.NewProgram(New(ctx, cfg, remote, opts...), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
