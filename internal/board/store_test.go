package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

func project(id int, name string, status models.Status) models.Project {
	return models.Project{ID: types.ProjectID(id), Name: name, Status: status}
}

func ids(projects []models.Project) []types.ProjectID {
	out := make([]types.ProjectID, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

// newTestStore builds a board with three projects to start, one in progress and one done.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Replace([]models.Project{
		project(1, "Website", models.StatusToStart),
		project(2, "Mobile app", models.StatusToStart),
		project(3, "Billing", models.StatusToStart),
		project(4, "Search", models.StatusInProgress),
		project(5, "Migration", models.StatusDone),
	}))
	return s
}

func TestStore_ReplaceBuildsBucketsInInputOrder(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []types.ProjectID{1, 2, 3}, ids(s.SnapshotForStatus(models.StatusToStart)))
	assert.Equal(t, []types.ProjectID{4}, ids(s.SnapshotForStatus(models.StatusInProgress)))
	assert.Empty(t, s.SnapshotForStatus(models.StatusLate))
	assert.Equal(t, []types.ProjectID{5}, ids(s.SnapshotForStatus(models.StatusDone)))
	assert.NoError(t, s.Validate())
}

func TestStore_ReplaceRejectsUnknownStatusWithoutMutating(t *testing.T) {
	s := newTestStore(t)

	err := s.Replace([]models.Project{project(9, "Bad", models.Status("ARCHIVED"))})
	assert.ErrorIs(t, err, models.ErrUnknownStatus)
	assert.Equal(t, 5, s.Len())
}

func TestStore_UpsertKeepsPositionWhenStatusUnchanged(t *testing.T) {
	s := newTestStore(t)

	updated := project(2, "Mobile app v2", models.StatusToStart)
	updated.DaysLate = 4
	require.NoError(t, s.Upsert(updated))

	assert.Equal(t, []types.ProjectID{1, 2, 3}, ids(s.SnapshotForStatus(models.StatusToStart)))
	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Mobile app v2", got.Name)
	assert.Equal(t, 4, got.DaysLate)
}

func TestStore_UpsertMovesToEndOfNewBucket(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Upsert(project(1, "Website", models.StatusInProgress)))

	assert.Equal(t, []types.ProjectID{2, 3}, ids(s.SnapshotForStatus(models.StatusToStart)))
	assert.Equal(t, []types.ProjectID{4, 1}, ids(s.SnapshotForStatus(models.StatusInProgress)))
	assert.NoError(t, s.Validate())
}

func TestStore_UpsertInsertsNewProject(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(project(6, "Audit", models.StatusLate)))

	assert.True(t, s.Has(6))
	assert.Equal(t, []types.ProjectID{6}, ids(s.SnapshotForStatus(models.StatusLate)))
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.False(t, s.Has(2))
	assert.Equal(t, []types.ProjectID{1, 3}, ids(s.SnapshotForStatus(models.StatusToStart)))
	assert.NoError(t, s.Validate())
}

func TestStore_ReorderWithinColumn(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Reorder(3, models.StatusToStart, 0))
	assert.Equal(t, []types.ProjectID{3, 1, 2}, ids(s.SnapshotForStatus(models.StatusToStart)))

	require.NoError(t, s.Reorder(3, models.StatusToStart, 1))
	assert.Equal(t, []types.ProjectID{1, 3, 2}, ids(s.SnapshotForStatus(models.StatusToStart)))

	assert.Equal(t, []types.ProjectID{4}, ids(s.SnapshotForStatus(models.StatusInProgress)))
	assert.NoError(t, s.Validate())
}

func TestStore_ReorderClampsIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []types.ProjectID
	}{
		{"negative", -5, []types.ProjectID{2, 1, 3}},
		{"past end", 99, []types.ProjectID{1, 3, 2}},
		{"exact end", 2, []types.ProjectID{1, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, s.Reorder(2, models.StatusToStart, tt.index))
			assert.Equal(t, tt.want, ids(s.SnapshotForStatus(models.StatusToStart)))
		})
	}
}

func TestStore_ReorderAcrossColumnsDoesNotChangeStatus(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Reorder(1, models.StatusDone, 0))

	assert.Equal(t, []types.ProjectID{1, 5}, ids(s.SnapshotForStatus(models.StatusDone)))
	got, _ := s.Get(1)
	assert.Equal(t, models.StatusToStart, got.Status)

	status, index, ok := s.IndexOf(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, status)
	assert.Equal(t, 0, index)

	// display and status disagree until a transition is paired with the move
	assert.Error(t, s.Validate())
}

func TestStore_ReorderErrors(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.Reorder(42, models.StatusDone, 0), ErrUnknownProject)
	assert.ErrorIs(t, s.Reorder(1, models.Status("NOPE"), 0), models.ErrUnknownStatus)
}

func TestStore_SetStatusAppendsToNewBucket(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.setStatus(1, models.StatusDone))
	assert.Equal(t, []types.ProjectID{5, 1}, ids(s.SnapshotForStatus(models.StatusDone)))
	assert.NoError(t, s.Validate())

	// already displayed in the target bucket: position is kept
	require.NoError(t, s.Reorder(2, models.StatusLate, 0))
	assert.True(t, s.setStatus(2, models.StatusLate))
	assert.Equal(t, []types.ProjectID{2}, ids(s.SnapshotForStatus(models.StatusLate)))

	assert.False(t, s.setStatus(99, models.StatusDone))
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(models.Project{
		ID:           1,
		Name:         "Website",
		Status:       models.StatusToStart,
		Responsibles: []models.ResponsibleRef{{ID: 1, Name: "Ana"}},
	}))

	snap := s.SnapshotForStatus(models.StatusToStart)
	snap[0].Name = "changed"
	snap[0].Responsibles[0].Name = "changed"

	got, _ := s.Get(1)
	assert.Equal(t, "Website", got.Name)
	assert.Equal(t, "Ana", got.Responsibles[0].Name)

	all := s.Snapshot()
	assert.Len(t, all, len(models.AllStatuses))
	assert.Len(t, all[models.StatusToStart], 3)
}
