package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/dnd"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/notify"
	"github.com/thenoetrevino/quadro/internal/tui/state"
	"github.com/thenoetrevino/quadro/internal/types"
)

// columnChrome is the column height not available to cards: border and header
const columnChrome = 4

// Update handles all incoming messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetWidth(msg.Width)
		m.ui.SetHeight(msg.Height)
		m.help.SetWidth(msg.Width)
		m.clampSelection()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case reloadedMsg:
		return m.handleReloaded(msg)

	case transitionDoneMsg:
		return m.handleTransitionDone(msg)

	case notificationTickMsg:
		m.notes.Prune()
		if m.notes.HasAny() {
			return m, notificationTick()
		}
		m.ticking = false
		return m, nil

	case refreshTickMsg:
		// a reload under an active gesture would move cards out from under it
		if m.recon.Dragging() {
			return m, m.refreshTick()
		}
		return m, tea.Batch(m.reloadCmd(false), m.refreshTick())
	}
	return m, nil
}

// handleKey dispatches on the gesture state first: while a card is dragged
// every other binding is suppressed.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.recon.Dragging() {
		next, cmd := m.handleDragKey(msg)
		return next.(Model).afterDrag(cmd)
	}
	switch m.ui.Mode() {
	case state.StatusMenuMode:
		return m.handleMenuKey(msg)
	case state.HelpMode:
		return m.handleHelpKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.ui.SetMode(state.HelpMode)

	case key.Matches(msg, m.keys.PrevColumn):
		m.ui.SetSelectedColumn(m.ui.SelectedColumn() - 1)
		m.clampSelection()

	case key.Matches(msg, m.keys.NextColumn):
		m.ui.SetSelectedColumn(m.ui.SelectedColumn() + 1)
		m.clampSelection()

	case key.Matches(msg, m.keys.PrevProject):
		m.ui.SetSelectedCard(m.ui.SelectedCard() - 1)
		m.clampSelection()

	case key.Matches(msg, m.keys.NextProject):
		m.ui.SetSelectedCard(m.ui.SelectedCard() + 1)
		m.clampSelection()

	case key.Matches(msg, m.keys.ChangeStatus):
		if p, ok := m.selectedProject(); ok {
			m.ui.OpenStatusMenu(p.ID, p.Status)
		}

	case key.Matches(msg, m.keys.Grab):
		return m.beginDrag()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd(true)

	case key.Matches(msg, m.keys.Dismiss):
		m.notes.DismissLatest()
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help, m.keys.Quit, m.keys.Cancel, m.keys.Drop) {
		m.ui.SetMode(state.NormalMode)
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevProject):
		m.ui.MoveMenuCursor(-1)

	case key.Matches(msg, m.keys.NextProject):
		m.ui.MoveMenuCursor(1)

	case key.Matches(msg, m.keys.Cancel, m.keys.Quit, m.keys.ChangeStatus):
		m.ui.CloseStatusMenu()

	case key.Matches(msg, m.keys.Drop):
		menu := m.ui.Menu()
		m.ui.CloseStatusMenu()
		target, ok := menu.Selected()
		if !ok {
			return m, nil
		}
		return m.startTransition(menu.ProjectID, target)
	}
	return m, nil
}

// startTransition applies a status change optimistically and sends it.
// The cursor follows the card into its new column.
func (m Model) startTransition(id types.ProjectID, target models.Status) (tea.Model, tea.Cmd) {
	req, err := m.coord.Transition(id, target)
	if err != nil {
		m.notes.Notify(notify.KindError, m.transitionErrorMessage(id, err))
		cmd := m.watchNotifications()
		return m, cmd
	}
	m.follow(id)
	return m, m.transitionCmd(req)
}

func (m Model) beginDrag() (tea.Model, tea.Cmd) {
	p, ok := m.selectedProject()
	if !ok {
		return m, nil
	}
	if _, pending := m.coord.Pending(p.ID); pending {
		m.notes.Notify(notify.KindInfo, m.transitionErrorMessage(p.ID, board.ErrTransitionAlreadyPending))
		cmd := m.watchNotifications()
		return m, cmd
	}
	if err := m.recon.Begin(p.ID); err != nil {
		slog.Warn("failed to start drag", "project_id", p.ID, "error", err)
	}
	return m, nil
}

func (m Model) handleDragKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.recon.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevColumn):
		m.moveHover(-1, 0)

	case key.Matches(msg, m.keys.NextColumn):
		m.moveHover(1, 0)

	case key.Matches(msg, m.keys.PrevProject):
		m.moveHover(0, -1)

	case key.Matches(msg, m.keys.NextProject):
		m.moveHover(0, 1)

	case key.Matches(msg, m.keys.Cancel):
		drag, _ := m.recon.Active()
		m.recon.Cancel()
		m.follow(drag.ProjectID)

	case key.Matches(msg, m.keys.Drop):
		return m.drop()
	}
	return m, nil
}

// moveHover shifts the drop target. Indexes are counted with the dragged
// card removed from its origin column, matching how the store reorders.
func (m Model) moveHover(dColumn, dIndex int) {
	drag, ok := m.recon.Active()
	if !ok {
		return
	}
	column := clamp(drag.Hover.Status.Index()+dColumn, 0, len(models.AllStatuses)-1)
	status := models.AllStatuses[column]

	limit := len(m.store.SnapshotForStatus(status))
	if status == drag.Origin.Status {
		limit--
	}
	index := clamp(drag.Hover.Index+dIndex, 0, max(0, limit))

	if err := m.recon.MoveHover(status, index); err != nil {
		return
	}
	m.ui.SelectStatus(status)
	m.ui.SetSelectedCard(index)
	m.ensureVisible()
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	result, err := m.recon.Drop()
	if err != nil {
		m.notes.Notify(notify.KindError, m.dropErrorMessage(result.ProjectID, err))
		m.follow(result.ProjectID)
		cmd := m.watchNotifications()
		return m, cmd
	}
	m.follow(result.ProjectID)
	if result.Request == nil {
		return m, nil
	}
	return m, m.transitionCmd(result.Request)
}

func (m Model) handleTransitionDone(msg transitionDoneMsg) (tea.Model, tea.Cmd) {
	selected, hadSelection := m.selectedID()

	outcome := m.recon.Resolve(msg.resp)
	slog.Debug("transition resolved", "project_id", outcome.ProjectID, "kind", outcome.Kind)

	m.restoreSelection(selected, hadSelection)
	cmd := m.watchNotifications()
	if !outcome.Resync {
		return m, cmd
	}
	if m.recon.Dragging() {
		m.resync = true
		return m, cmd
	}
	return m, tea.Batch(cmd, m.reloadCmd(false))
}

// afterDrag issues the reload a failed request asked for while a card was held.
func (m Model) afterDrag(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !m.resync || m.recon.Dragging() {
		return m, cmd
	}
	m.resync = false
	return m, tea.Batch(cmd, m.reloadCmd(false))
}

func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	selected, hadSelection := m.selectedID()

	err := m.coord.ApplyReload(msg.resp)
	switch {
	case errors.Is(err, board.ErrStaleReload):
		return m, nil
	case err != nil:
		slog.Error("failed to reload board", "error", err)
		m.notes.Notify(notify.KindError, "Failed to load projects")
	default:
		m.loaded = true
		if msg.manual {
			m.notes.Notify(notify.KindInfo, fmt.Sprintf("Board reloaded: %d projects", m.store.Len()))
		}
	}

	if drag, ok := m.recon.Active(); ok && !m.store.Has(drag.ProjectID) {
		m.recon.Cancel()
	}
	m.restoreSelection(selected, hadSelection)
	cmd := m.watchNotifications()
	return m, cmd
}

func (m Model) transitionErrorMessage(id types.ProjectID, err error) string {
	name := m.projectName(id)
	switch {
	case errors.Is(err, board.ErrTransitionAlreadyPending):
		return fmt.Sprintf("%s is still saving its last change", name)
	case errors.Is(err, board.ErrNoOpTransition):
		return fmt.Sprintf("%s is already in that status", name)
	case errors.Is(err, board.ErrUnknownProject):
		return fmt.Sprintf("%s is no longer on the board", name)
	default:
		return fmt.Sprintf("Cannot move %s: %v", name, err)
	}
}

func (m Model) dropErrorMessage(id types.ProjectID, err error) string {
	if errors.Is(err, dnd.ErrSourceMismatch) {
		return "The board changed during the drag; nothing was moved"
	}
	return m.transitionErrorMessage(id, err)
}

func (m Model) projectName(id types.ProjectID) string {
	if p, ok := m.store.Get(id); ok && p.Name != "" {
		return fmt.Sprintf("%q", p.Name)
	}
	return fmt.Sprintf("Project %d", id)
}

// selectedProject returns the card under the cursor.
func (m Model) selectedProject() (models.Project, bool) {
	cards := m.store.SnapshotForStatus(m.ui.SelectedStatus())
	i := m.ui.SelectedCard()
	if i < 0 || i >= len(cards) {
		return models.Project{}, false
	}
	return cards[i], true
}

func (m Model) selectedID() (types.ProjectID, bool) {
	p, ok := m.selectedProject()
	return p.ID, ok
}

// restoreSelection keeps the cursor on the same card across a store change.
func (m Model) restoreSelection(id types.ProjectID, ok bool) {
	if m.recon.Dragging() {
		return
	}
	if ok {
		m.follow(id)
		return
	}
	m.clampSelection()
}

// follow moves the cursor to wherever the card is displayed now.
func (m Model) follow(id types.ProjectID) {
	status, index, ok := m.store.IndexOf(id)
	if !ok {
		m.clampSelection()
		return
	}
	m.ui.SelectStatus(status)
	m.ui.SetSelectedCard(index)
	m.ensureVisible()
}

func (m Model) clampSelection() {
	m.ui.ClampSelection(len(m.store.SnapshotForStatus(m.ui.SelectedStatus())))
	m.ensureVisible()
}

func (m Model) ensureVisible() {
	m.ui.EnsureCardVisible(m.ui.SelectedStatus(), m.ui.SelectedCard(), m.visibleCards())
}

func (m Model) visibleCards() int {
	return max(1, (m.ui.ContentHeight()-columnChrome)/cardHeight)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
