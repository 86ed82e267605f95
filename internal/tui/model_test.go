package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/notify"
	"github.com/thenoetrevino/quadro/internal/testutil"
	"github.com/thenoetrevino/quadro/internal/types"
)

var (
	keyRight = tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	keyLeft  = tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft})
	keyDown  = tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
	keyUp    = tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
	keyEnter = tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	keyEsc   = tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc})
	keySpace = tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
)

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Text: string(r), Code: r})
}

func project(id int, name string, status models.Status, people ...string) models.Project {
	p := models.Project{ID: types.ProjectID(id), Name: name, Status: status}
	for i, person := range people {
		p.Responsibles = append(p.Responsibles, models.ResponsibleRef{ID: types.ResponsibleID(i + 1), Name: person})
	}
	return p
}

// testBoard wires a model to a fake remote and a controllable clock.
type testBoard struct {
	t      *testing.T
	m      Model
	remote *testutil.FakeRemote
	now    time.Time
}

func newTestBoard(t *testing.T, projects ...models.Project) *testBoard {
	t.Helper()
	tb := &testBoard{
		t:      t,
		remote: testutil.NewFakeRemote(projects...),
		now:    time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
	}
	tb.m = New(context.Background(), config.Default(), tb.remote, WithClock(func() time.Time { return tb.now }))
	tb.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return tb
}

// load runs the initial fetch to completion.
func (tb *testBoard) load() *testBoard {
	tb.t.Helper()
	tb.exec(tb.m.reloadCmd(false))
	require.True(tb.t, tb.m.Loaded())
	return tb
}

func (tb *testBoard) send(msg tea.Msg) tea.Cmd {
	tb.t.Helper()
	next, cmd := tb.m.Update(msg)
	tb.m = next.(Model)
	return cmd
}

// exec runs a command that performs remote I/O and feeds its message back.
// Follow-up commands are ticks and are not run.
func (tb *testBoard) exec(cmd tea.Cmd) {
	tb.t.Helper()
	require.NotNil(tb.t, cmd)
	tb.send(cmd())
}

func (tb *testBoard) column(status models.Status) []string {
	var names []string
	for _, p := range tb.m.Store().SnapshotForStatus(status) {
		names = append(names, p.Name)
	}
	return names
}

func (tb *testBoard) messages() []string {
	var out []string
	for _, n := range tb.m.Notifications() {
		out = append(out, n.Message)
	}
	return out
}

func (tb *testBoard) lastNotification() notify.Notification {
	tb.t.Helper()
	active := tb.m.Notifications()
	require.NotEmpty(tb.t, active)
	return active[len(active)-1]
}

func TestInit_LoadsBoard(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusLate),
	)
	assert.False(t, tb.m.Loaded())
	assert.NotNil(t, tb.m.Init())

	tb.load()
	assert.Equal(t, 2, tb.m.Store().Len())
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusToStart))
	assert.Empty(t, tb.m.Notifications(), "startup load is silent")
}

func TestNavigation_FollowsColumnsAndClamps(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
		project(3, "Gamma", models.StatusInProgress),
	).load()

	tb.send(keyDown)
	tb.send(keyDown)
	p, ok := tb.m.selectedProject()
	require.True(t, ok)
	assert.Equal(t, "Beta", p.Name, "selection stops at the last card")

	tb.send(runeKey('l'))
	p, ok = tb.m.selectedProject()
	require.True(t, ok)
	assert.Equal(t, "Gamma", p.Name, "index is clamped to the shorter column")

	tb.send(keyRight)
	_, ok = tb.m.selectedProject()
	assert.False(t, ok, "Late column is empty")

	tb.send(keyLeft)
	tb.send(keyUp)
	assert.Equal(t, models.StatusInProgress, tb.m.ui.SelectedStatus())
}

func TestStatusMenu_CommitsTransition(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()

	tb.send(runeKey('s'))
	tb.send(keyDown) // In Progress, Late, Done
	cmd := tb.send(keyEnter)
	require.NotNil(t, cmd)

	// optimistic: moved before the server answered
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusLate))
	assert.Equal(t, 1, tb.m.coord.PendingCount())
	assert.Equal(t, models.StatusLate, tb.m.ui.SelectedStatus(), "cursor follows the card")

	tb.exec(cmd)
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusLate))
	assert.Zero(t, tb.m.coord.PendingCount())

	n := tb.lastNotification()
	assert.Equal(t, notify.KindSuccess, n.Kind)
	assert.Equal(t, `"Alpha" moved to Late`, n.Message)
	assert.Equal(t, []testutil.StatusCall{{ID: 1, Target: models.StatusLate}}, tb.remote.Calls())
}

func TestStatusMenu_EscapeClosesWithoutChange(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()

	tb.send(runeKey('s'))
	cmd := tb.send(keyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusToStart))
	assert.Empty(t, tb.remote.Calls())
}

func TestStatusMenu_RejectionRollsBackWithServerMessage(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()
	tb.remote.Fail(1, board.Rejected(400, "cannot mark as late before the planned start date"))

	tb.send(runeKey('s'))
	tb.send(keyDown)
	tb.exec(tb.send(keyEnter))

	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusToStart))
	assert.Empty(t, tb.column(models.StatusLate))
	assert.Equal(t, models.StatusToStart, tb.m.ui.SelectedStatus(), "cursor follows the rollback")

	n := tb.lastNotification()
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Equal(t, "cannot mark as late before the planned start date", n.Message)
}

func TestDrag_CrossColumnDropTransitions(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusInProgress),
	).load()

	tb.send(keySpace)
	require.True(t, tb.m.recon.Dragging())
	tb.send(keyRight)
	tb.send(keyDown) // below Beta

	cmd := tb.send(keyEnter)
	require.NotNil(t, cmd)
	assert.False(t, tb.m.recon.Dragging())
	assert.Equal(t, []string{"Beta", "Alpha"}, tb.column(models.StatusInProgress))

	tb.exec(cmd)
	assert.Equal(t, []string{"Beta", "Alpha"}, tb.column(models.StatusInProgress))
	assert.Equal(t, notify.KindSuccess, tb.lastNotification().Kind)
	require.NoError(t, tb.m.Store().Validate())
}

func TestDrag_SameColumnReordersWithoutNetwork(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
	).load()

	tb.send(keySpace)
	tb.send(keyDown)
	cmd := tb.send(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"Beta", "Alpha"}, tb.column(models.StatusToStart))
	assert.Empty(t, tb.remote.Calls())
	assert.Empty(t, tb.m.Notifications())
}

func TestDrag_FailedDropReturnsCardToOrigin(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
		project(3, "Gamma", models.StatusDone),
	).load()
	tb.remote.Fail(1, board.Unreachable(errors.New("connection refused")))

	tb.send(keySpace)
	tb.send(keyRight)
	tb.send(keyRight)
	tb.send(keyRight)
	tb.exec(tb.send(keyEnter))

	assert.Equal(t, []string{"Alpha", "Beta"}, tb.column(models.StatusToStart), "back at its original index")
	assert.Equal(t, []string{"Gamma"}, tb.column(models.StatusDone))
	n := tb.lastNotification()
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Equal(t, board.DefaultFailureMessage, n.Message)
}

// runReload executes a follow-up command that is expected to reload the board.
func (tb *testBoard) runReload(cmd tea.Cmd) {
	tb.t.Helper()
	require.NotNil(tb.t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(tb.t, batch, 1)
		msg = batch[0]()
	}
	require.IsType(tb.t, reloadedMsg{}, msg)
	tb.send(msg)
}

func TestTransition_LostResponseReloadsBoard(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()
	tb.remote.Fail(1, board.Unreachable(errors.New("failed to decode response")))
	tb.m.ticking = true

	tb.send(runeKey('s'))
	tb.send(keyDown)
	msg := tb.send(keyEnter)()
	// the server applied the change even though the answer was lost
	tb.remote.SetProjects(project(1, "Alpha", models.StatusLate))

	follow := tb.send(msg)
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusToStart), "rolled back first")

	tb.runReload(follow)
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusLate))
	assert.Empty(t, tb.column(models.StatusToStart))
}

func TestTransition_LostResponseWaitsForDragToEnd(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
	).load()
	tb.remote.Fail(1, board.Unreachable(errors.New("connection reset")))
	tb.m.ticking = true

	tb.send(runeKey('s'))
	tb.send(keyDown)
	msg := tb.send(keyEnter)()

	tb.send(keyLeft)
	tb.send(keyLeft)
	tb.send(keySpace) // grabs Beta while Alpha is still saving
	require.True(t, tb.m.recon.Dragging())
	assert.Nil(t, tb.send(msg), "no reload under an active gesture")

	tb.runReload(tb.send(keyEsc))
	assert.False(t, tb.m.resync)
	assert.Equal(t, []string{"Alpha", "Beta"}, tb.column(models.StatusToStart))
}

func TestDrag_CancelLeavesBoardUntouched(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
	).load()

	tb.send(keySpace)
	tb.send(keyRight)
	tb.send(keyEsc)

	assert.False(t, tb.m.recon.Dragging())
	assert.Equal(t, []string{"Alpha", "Beta"}, tb.column(models.StatusToStart))
	assert.Equal(t, models.StatusToStart, tb.m.ui.SelectedStatus())
	assert.Empty(t, tb.remote.Calls())
}

// TestDrag_SuppressesOtherInput ensures only drag keys act during a gesture.
func TestDrag_SuppressesOtherInput(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()
	tb.send(keySpace)

	for _, k := range []tea.KeyPressMsg{runeKey('r'), runeKey('s'), runeKey('q'), runeKey('?')} {
		cmd := tb.send(k)
		assert.Nil(t, cmd, "key %q", k.String())
	}
	assert.True(t, tb.m.recon.Dragging())
	assert.Equal(t, []string{"Alpha"}, tb.column(models.StatusToStart))
}

func TestBeginDrag_RefusedWhileSaving(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()

	tb.send(runeKey('s'))
	tb.send(keyEnter) // In Progress, left unresolved

	tb.send(keySpace)
	assert.False(t, tb.m.recon.Dragging())
	assert.Equal(t, `"Alpha" is still saving its last change`, tb.lastNotification().Message)
}

func TestReload_ManualNotifiesAndKeepsSelection(t *testing.T) {
	tb := newTestBoard(t,
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
	).load()
	tb.send(keyDown)

	tb.remote.SetProjects(
		project(3, "New", models.StatusToStart),
		project(1, "Alpha", models.StatusToStart),
		project(2, "Beta", models.StatusToStart),
	)
	tb.exec(tb.send(runeKey('r')))

	assert.Equal(t, "Board reloaded: 3 projects", tb.lastNotification().Message)
	p, ok := tb.m.selectedProject()
	require.True(t, ok)
	assert.Equal(t, "Beta", p.Name)
}

func TestReload_FetchFailureNotifies(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()
	tb.remote.FailFetch(errors.New("connection refused"))

	tb.exec(tb.send(runeKey('r')))

	n := tb.lastNotification()
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Equal(t, "Failed to load projects", n.Message)
	assert.Equal(t, 1, tb.m.Store().Len(), "board kept as it was")
}

func TestReload_OlderResultIgnored(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart))

	older := tb.m.reloadCmd(false)
	tb.remote.SetProjects(project(1, "Alpha", models.StatusToStart), project(2, "Beta", models.StatusDone))
	newer := tb.m.reloadCmd(false)

	tb.exec(newer)
	tb.exec(older)

	assert.Equal(t, 2, tb.m.Store().Len())
	assert.Empty(t, tb.m.Notifications())
}

func TestRefreshTick_SkippedWhileDragging(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()
	tb.send(keySpace)

	// refresh is off by default, so the tick reschedules nothing and reloads nothing
	cmd := tb.send(refreshTickMsg{})
	assert.Nil(t, cmd)
	assert.True(t, tb.m.recon.Dragging())
}

func TestNotifications_ExpireAndDismiss(t *testing.T) {
	tb := newTestBoard(t, project(1, "Alpha", models.StatusToStart)).load()
	tb.remote.FailFetch(errors.New("down"))

	cmd := tb.send(runeKey('r'))
	tb.exec(cmd)
	tb.exec(cmd)
	require.Len(t, tb.m.Notifications(), 2)
	require.True(t, tb.m.ticking)

	tb.send(runeKey('x'))
	assert.Len(t, tb.m.Notifications(), 1)

	tb.now = tb.now.Add(config.DefaultNotificationSeconds * time.Second)
	assert.Nil(t, tb.send(notificationTickMsg{}))
	assert.Empty(t, tb.m.Notifications())
	assert.False(t, tb.m.ticking)
}

func TestHelpMode_Toggles(t *testing.T) {
	tb := newTestBoard(t).load()

	tb.send(runeKey('?'))
	assert.Contains(t, tb.m.View().Content, "Keys")

	tb.send(keyEsc)
	assert.NotContains(t, tb.m.View().Content, "prev column")
}

func TestQuit(t *testing.T) {
	tb := newTestBoard(t).load()
	cmd := tb.send(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
