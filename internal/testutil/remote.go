package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// StatusCall records one ChangeStatus invocation.
type StatusCall struct {
	ID     types.ProjectID
	Target models.Status
}

// FakeRemote is an in-memory project service. Accepted status changes are
// applied to its own project list so a later fetch sees them.
type FakeRemote struct {
	mu       sync.Mutex
	projects []models.Project
	failures map[types.ProjectID]error
	fetchErr error
	calls    []StatusCall
}

// NewFakeRemote creates a remote serving the given projects.
func NewFakeRemote(projects ...models.Project) *FakeRemote {
	f := &FakeRemote{failures: make(map[types.ProjectID]error)}
	for _, p := range projects {
		f.projects = append(f.projects, p.Clone())
	}
	return f
}

// Fail makes every ChangeStatus for id return err. A nil err clears it.
func (f *FakeRemote) Fail(id types.ProjectID, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, id)
		return
	}
	f.failures[id] = err
}

// FailFetch makes FetchAllProjects return err.
func (f *FakeRemote) FailFetch(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchErr = err
}

// SetProjects replaces what the remote serves.
func (f *FakeRemote) SetProjects(projects ...models.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = f.projects[:0]
	for _, p := range projects {
		f.projects = append(f.projects, p.Clone())
	}
}

// Calls returns the recorded ChangeStatus calls.
func (f *FakeRemote) Calls() []StatusCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]StatusCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeRemote) FetchAllProjects(_ context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (f *FakeRemote) ChangeStatus(_ context.Context, id types.ProjectID, target models.Status) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, StatusCall{ID: id, Target: target})

	if err, ok := f.failures[id]; ok {
		return nil, err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Status = target
			p := f.projects[i].Clone()
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %d not found", id)
}
