package board

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/notify"
	"github.com/thenoetrevino/quadro/internal/types"
)

type statusCall struct {
	id     types.ProjectID
	target models.Status
}

// scriptedRemote answers ChangeStatus with respond, or echoes the target back.
type scriptedRemote struct {
	projects []models.Project
	calls    []statusCall
	fetches  int
	respond  func(id types.ProjectID, target models.Status) (*models.Project, error)
}

func (r *scriptedRemote) FetchAllProjects(_ context.Context) ([]models.Project, error) {
	r.fetches++
	out := make([]models.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

func (r *scriptedRemote) ChangeStatus(_ context.Context, id types.ProjectID, target models.Status) (*models.Project, error) {
	r.calls = append(r.calls, statusCall{id: id, target: target})
	if r.respond != nil {
		return r.respond(id, target)
	}
	p := models.Project{ID: id, Status: target}
	return &p, nil
}

type sentNotification struct {
	kind    notify.Kind
	message string
}

type coordinatorFixture struct {
	store  *Store
	remote *scriptedRemote
	sent   *[]sentNotification
	coord  *Coordinator
}

func newCoordinatorFixture(t *testing.T) coordinatorFixture {
	t.Helper()
	store := newTestStore(t)
	remote := &scriptedRemote{}
	sent := &[]sentNotification{}
	notifier := notify.Func(func(k notify.Kind, msg string) {
		*sent = append(*sent, sentNotification{kind: k, message: msg})
	})
	return coordinatorFixture{
		store:  store,
		remote: remote,
		sent:   sent,
		coord:  NewCoordinator(store, remote, notifier),
	}
}

func statusOf(t *testing.T, s *Store, id types.ProjectID) models.Status {
	t.Helper()
	p, ok := s.Get(id)
	require.True(t, ok, "project %d missing", id)
	return p.Status
}

// ============================================================================
// Rejections
// ============================================================================

func TestTransition_NoOpIsRejectedWithoutCall(t *testing.T) {
	f := newCoordinatorFixture(t)

	_, err := f.coord.TransitionSync(context.Background(), 1, models.StatusToStart)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, ErrNoOpTransition)
	assert.Empty(t, f.remote.calls)
	assert.Empty(t, *f.sent)
	assert.Zero(t, f.coord.PendingCount())
	assert.Equal(t, models.StatusToStart, statusOf(t, f.store, 1))
}

func TestTransition_UnknownTargetIsInvalid(t *testing.T) {
	f := newCoordinatorFixture(t)

	_, err := f.coord.Transition(1, models.Status("ARCHIVED"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, models.ErrUnknownStatus)
	assert.NotErrorIs(t, err, ErrNoOpTransition)
	assert.Empty(t, f.remote.calls)
}

func TestTransition_UnknownProject(t *testing.T) {
	f := newCoordinatorFixture(t)

	_, err := f.coord.Transition(404, models.StatusDone)

	assert.ErrorIs(t, err, ErrUnknownProject)
	assert.Empty(t, f.remote.calls)
	assert.Empty(t, *f.sent)
}

func TestTransition_AtMostOnePending(t *testing.T) {
	f := newCoordinatorFixture(t)

	first, err := f.coord.Transition(1, models.StatusInProgress)
	require.NoError(t, err)

	_, err = f.coord.Transition(1, models.StatusDone)
	assert.ErrorIs(t, err, ErrTransitionAlreadyPending)

	assert.Equal(t, models.StatusInProgress, statusOf(t, f.store, 1))
	pending, ok := f.coord.Pending(1)
	require.True(t, ok)
	assert.Equal(t, first.PendingTransition, pending)
	assert.Empty(t, f.remote.calls, "nothing is sent until the request runs")

	f.coord.Resolve(first.Do(context.Background()))
	_, ok = f.coord.Pending(1)
	assert.False(t, ok)

	_, err = f.coord.Transition(1, models.StatusDone)
	assert.NoError(t, err, "a new transition is allowed once the first resolved")
}

// ============================================================================
// Optimistic apply, commit and rollback
// ============================================================================

func TestTransition_AppliesOptimisticallyBeforeRemoteAnswers(t *testing.T) {
	f := newCoordinatorFixture(t)

	req, err := f.coord.Transition(1, models.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, statusOf(t, f.store, 1))
	assert.Equal(t, []types.ProjectID{4, 1}, ids(f.store.SnapshotForStatus(models.StatusInProgress)))
	assert.NoError(t, f.store.Validate())
	assert.Equal(t, models.StatusToStart, req.Previous)
	assert.Equal(t, models.StatusInProgress, req.Target)
	assert.NotZero(t, req.Token)
}

func TestTransition_TokensIncrease(t *testing.T) {
	f := newCoordinatorFixture(t)

	a, err := f.coord.Transition(1, models.StatusDone)
	require.NoError(t, err)
	b, err := f.coord.Transition(2, models.StatusDone)
	require.NoError(t, err)

	assert.Greater(t, b.Token, a.Token)
}

func TestResolve_CommitUsesServerRecord(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(id types.ProjectID, target models.Status) (*models.Project, error) {
		return &models.Project{
			ID:               id,
			Name:             "Website",
			Status:           target,
			DaysLate:         3,
			RemainingPercent: 42.5,
			Responsibles:     []models.ResponsibleRef{{ID: 7, Name: "Ana"}},
		}, nil
	}

	outcome, err := f.coord.TransitionSync(context.Background(), 1, models.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCommitted, outcome.Kind)
	assert.False(t, outcome.Failed())
	require.NotNil(t, outcome.Project)

	got, _ := f.store.Get(1)
	assert.Equal(t, *outcome.Project, got)
	assert.Equal(t, 3, got.DaysLate)
	assert.Equal(t, 42.5, got.RemainingPercent)
	assert.Equal(t, []statusCall{{id: 1, target: models.StatusInProgress}}, f.remote.calls)

	require.Len(t, *f.sent, 1)
	assert.Equal(t, notify.KindSuccess, (*f.sent)[0].kind)
	assert.Contains(t, (*f.sent)[0].message, "In Progress")
	assert.NoError(t, f.store.Validate())
}

func TestResolve_RemoteRejectionRollsBack(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(types.ProjectID, models.Status) (*models.Project, error) {
		return nil, Rejected(400, "Project cannot start before its planned start date")
	}

	outcome, err := f.coord.TransitionSync(context.Background(), 1, models.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRemoteRejected, outcome.Kind)
	assert.True(t, outcome.Failed())
	assert.Equal(t, models.StatusToStart, statusOf(t, f.store, 1))
	assert.Zero(t, f.coord.PendingCount())

	require.Len(t, *f.sent, 1)
	assert.Equal(t, sentNotification{
		kind:    notify.KindError,
		message: "Project cannot start before its planned start date",
	}, (*f.sent)[0])
	assert.NoError(t, f.store.Validate())
}

func TestResolve_NetworkFailureUsesFallbackMessage(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(types.ProjectID, models.Status) (*models.Project, error) {
		return nil, errors.New("dial tcp 127.0.0.1:8080: connection refused")
	}

	outcome, err := f.coord.TransitionSync(context.Background(), 4, models.StatusDone)
	require.NoError(t, err)

	assert.Equal(t, OutcomeNetworkFailure, outcome.Kind)
	assert.Equal(t, DefaultFailureMessage, outcome.Message)
	assert.Equal(t, models.StatusInProgress, statusOf(t, f.store, 4))
	require.Len(t, *f.sent, 1)
	assert.Equal(t, notify.KindError, (*f.sent)[0].kind)
}

func TestResolve_RejectionWithoutMessageUsesConfiguredFallback(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.coord = NewCoordinator(f.store, f.remote, nil, WithFailureMessage("Could not move project"))
	f.remote.respond = func(types.ProjectID, models.Status) (*models.Project, error) {
		return nil, Rejected(500, "")
	}

	outcome, err := f.coord.TransitionSync(context.Background(), 1, models.StatusLate)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRemoteRejected, outcome.Kind)
	assert.Equal(t, "Could not move project", outcome.Message)
}

func TestResolve_ServerRecordForWrongProjectRollsBack(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(_ types.ProjectID, target models.Status) (*models.Project, error) {
		return &models.Project{ID: 99, Status: target}, nil
	}

	outcome, err := f.coord.TransitionSync(context.Background(), 1, models.StatusDone)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRemoteRejected, outcome.Kind)
	assert.Equal(t, models.StatusToStart, statusOf(t, f.store, 1))
	assert.False(t, f.store.Has(99))
}

func TestResolve_MissingServerRecordRollsBack(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(types.ProjectID, models.Status) (*models.Project, error) {
		return nil, nil
	}

	outcome, err := f.coord.TransitionSync(context.Background(), 1, models.StatusDone)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRemoteRejected, outcome.Kind)
	assert.Nil(t, outcome.Project)
	assert.Equal(t, models.StatusToStart, statusOf(t, f.store, 1))
	assert.Zero(t, f.coord.PendingCount())
	require.Len(t, *f.sent, 1)
	assert.Equal(t, notify.KindError, (*f.sent)[0].kind)
}

func TestResolve_OnlyNetworkFailureAsksForResync(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(id types.ProjectID, target models.Status) (*models.Project, error) {
		if id == 1 {
			return nil, Unreachable(errors.New("failed to decode response: unexpected EOF"))
		}
		return nil, Rejected(400, "no")
	}

	lost, err := f.coord.TransitionSync(context.Background(), 1, models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNetworkFailure, lost.Kind)
	assert.True(t, lost.Resync)

	refused, err := f.coord.TransitionSync(context.Background(), 2, models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoteRejected, refused.Kind)
	assert.False(t, refused.Resync)

	committed, err := NewCoordinator(f.store, &scriptedRemote{}, nil).TransitionSync(context.Background(), 3, models.StatusLate)
	require.NoError(t, err)
	assert.False(t, committed.Resync)
}

func TestResolve_IndependentProjectsResolveInAnyOrder(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.respond = func(id types.ProjectID, target models.Status) (*models.Project, error) {
		if id == 2 {
			return nil, Rejected(400, "no")
		}
		return &models.Project{ID: id, Status: target}, nil
	}

	a, err := f.coord.Transition(1, models.StatusDone)
	require.NoError(t, err)
	b, err := f.coord.Transition(2, models.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, 2, f.coord.PendingCount())

	respA := a.Do(context.Background())
	respB := b.Do(context.Background())

	assert.Equal(t, OutcomeRemoteRejected, f.coord.Resolve(respB).Kind)
	assert.Equal(t, OutcomeCommitted, f.coord.Resolve(respA).Kind)

	assert.Equal(t, models.StatusDone, statusOf(t, f.store, 1))
	assert.Equal(t, models.StatusToStart, statusOf(t, f.store, 2))
	assert.NoError(t, f.store.Validate())
}

func TestResolve_DuplicateResponseIsStale(t *testing.T) {
	f := newCoordinatorFixture(t)

	req, err := f.coord.Transition(1, models.StatusDone)
	require.NoError(t, err)
	resp := req.Do(context.Background())

	assert.Equal(t, OutcomeCommitted, f.coord.Resolve(resp).Kind)
	assert.Equal(t, OutcomeStale, f.coord.Resolve(resp).Kind)
	assert.Len(t, *f.sent, 1)
}

// ============================================================================
// Reload and stale responses
// ============================================================================

func TestResolve_ResponseAfterReloadIsIgnored(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.projects = []models.Project{
		project(1, "Website", models.StatusLate),
		project(2, "Mobile app", models.StatusToStart),
	}

	req, err := f.coord.Transition(1, models.StatusInProgress)
	require.NoError(t, err)
	resp := req.Do(context.Background())

	require.NoError(t, f.coord.Reload(context.Background()))
	_, pending := f.coord.Pending(1)
	assert.False(t, pending)

	outcome := f.coord.Resolve(resp)

	assert.Equal(t, OutcomeStale, outcome.Kind)
	assert.Equal(t, models.StatusLate, statusOf(t, f.store, 1))
	assert.Equal(t, 2, f.store.Len())
	assert.Empty(t, *f.sent)
	assert.NoError(t, f.store.Validate())
}

func TestResolve_FailedResponseAfterReloadDoesNotRevert(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.projects = []models.Project{project(1, "Website", models.StatusDone)}
	f.remote.respond = func(types.ProjectID, models.Status) (*models.Project, error) {
		return nil, Rejected(409, "conflict")
	}

	req, err := f.coord.Transition(1, models.StatusDone)
	require.NoError(t, err)
	resp := req.Do(context.Background())

	require.NoError(t, f.coord.Reload(context.Background()))
	assert.Equal(t, OutcomeStale, f.coord.Resolve(resp).Kind)
	assert.Equal(t, models.StatusDone, statusOf(t, f.store, 1))
	assert.Empty(t, *f.sent)
}

func TestApplyReload_KeepsTransitionsIssuedDuringFetch(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.projects = []models.Project{
		project(1, "Website", models.StatusToStart),
		project(2, "Mobile app", models.StatusToStart),
	}

	before, err := f.coord.Transition(1, models.StatusLate)
	require.NoError(t, err)

	reload := f.coord.BeginReload()
	during, err := f.coord.Transition(2, models.StatusDone)
	require.NoError(t, err)

	require.NoError(t, f.coord.ApplyReload(reload.Do(context.Background())))

	_, ok := f.coord.Pending(1)
	assert.False(t, ok, "issued before the reload began")
	_, ok = f.coord.Pending(2)
	assert.True(t, ok, "issued while the reload was in flight")
	assert.Equal(t, models.StatusToStart, statusOf(t, f.store, 1))
	assert.Equal(t, models.StatusDone, statusOf(t, f.store, 2))
	assert.NoError(t, f.store.Validate())

	assert.Equal(t, OutcomeStale, f.coord.Resolve(before.Do(context.Background())).Kind)
	assert.Equal(t, OutcomeCommitted, f.coord.Resolve(during.Do(context.Background())).Kind)
	assert.Equal(t, models.StatusDone, statusOf(t, f.store, 2))
}

func TestApplyReload_PendingCardKeepsItsSlot(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.projects = []models.Project{
		project(1, "Website", models.StatusToStart),
		project(2, "Mobile app", models.StatusToStart),
		project(5, "Migration", models.StatusDone),
		project(6, "Audit", models.StatusDone),
	}

	reload := f.coord.BeginReload()
	require.NoError(t, f.store.Reorder(2, models.StatusDone, 0))
	_, err := f.coord.Transition(2, models.StatusDone)
	require.NoError(t, err)

	require.NoError(t, f.coord.ApplyReload(reload.Do(context.Background())))

	assert.Equal(t, []types.ProjectID{2, 5, 6}, ids(f.store.SnapshotForStatus(models.StatusDone)))
	assert.Equal(t, []types.ProjectID{1}, ids(f.store.SnapshotForStatus(models.StatusToStart)))
	assert.NoError(t, f.store.Validate())
}

func TestApplyReload_OlderReloadIsDiscarded(t *testing.T) {
	f := newCoordinatorFixture(t)
	f.remote.projects = []models.Project{project(1, "Website", models.StatusToStart)}

	older := f.coord.BeginReload()
	olderResp := older.Do(context.Background())

	f.remote.projects = []models.Project{project(1, "Website", models.StatusDone)}
	require.NoError(t, f.coord.Reload(context.Background()))

	assert.ErrorIs(t, f.coord.ApplyReload(olderResp), ErrStaleReload)
	assert.Equal(t, models.StatusDone, statusOf(t, f.store, 1))
}

func TestApplyReload_FetchErrorLeavesBoardUntouched(t *testing.T) {
	f := newCoordinatorFixture(t)

	req, err := f.coord.Transition(1, models.StatusDone)
	require.NoError(t, err)

	err = f.coord.ApplyReload(ReloadResponse{seq: 99, Err: errors.New("timeout")})
	assert.Error(t, err)
	assert.Equal(t, 5, f.store.Len())

	_, ok := f.coord.Pending(req.ProjectID)
	assert.True(t, ok)
}
