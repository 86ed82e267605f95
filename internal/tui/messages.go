package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/quadro/internal/board"
)

// reloadedMsg carries a finished full fetch back to Update.
type reloadedMsg struct {
	resp   board.ReloadResponse
	manual bool // triggered by the reload key rather than startup or refresh
}

// transitionDoneMsg carries a finished status change back to Update.
type transitionDoneMsg struct {
	resp board.Response
}

// notificationTickMsg prunes expired notifications.
type notificationTickMsg struct{}

// refreshTickMsg triggers a periodic reload.
type refreshTickMsg struct{}

// requestContext bounds a remote call by the configured timeout.
func (m Model) requestContext() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(m.ctx)
	}
	return context.WithTimeout(m.ctx, m.timeout)
}

// reloadCmd starts a reload now and fetches in the background.
// BeginReload must run here, on the update goroutine.
func (m Model) reloadCmd(manual bool) tea.Cmd {
	req := m.coord.BeginReload()
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return reloadedMsg{resp: req.Do(ctx), manual: manual}
	}
}

// transitionCmd performs the remote half of a transition in the background.
func (m Model) transitionCmd(req *board.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return transitionDoneMsg{resp: req.Do(ctx)}
	}
}

func (m Model) refreshTick() tea.Cmd {
	interval := m.cfg.RefreshInterval()
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func notificationTick() tea.Cmd {
	return tea.Tick(notificationPoll, func(time.Time) tea.Msg {
		return notificationTickMsg{}
	})
}

// watchNotifications schedules pruning when notifications are on screen and
// no tick is pending yet.
func (m *Model) watchNotifications() tea.Cmd {
	if m.ticking || !m.notes.HasAny() {
		return nil
	}
	m.ticking = true
	return notificationTick()
}
