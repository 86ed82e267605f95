// Package board holds the in-memory board and the optimistic status
// transition engine that keeps it in step with the project service.
package board

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// Store is the in-memory snapshot of every known project, partitioned into
// one bucket per status. Each bucket keeps display order.
//
// Store is not safe for concurrent use. All mutations happen on the single
// goroutine that owns the board (the TUI update loop or a CLI command).
type Store struct {
	projects map[types.ProjectID]*models.Project

	// buckets maps each status to the ordered ids displayed in that column
	buckets map[models.Status][]types.ProjectID

	// location records which bucket currently holds an id. It equals the
	// project's status except between a cross-column Reorder and the
	// transition that accompanies it.
	location map[types.ProjectID]models.Status
}

// NewStore creates an empty store with one bucket per status.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.projects = make(map[types.ProjectID]*models.Project)
	s.buckets = make(map[models.Status][]types.ProjectID, len(models.AllStatuses))
	s.location = make(map[types.ProjectID]models.Status)
	for _, status := range models.AllStatuses {
		s.buckets[status] = nil
	}
}

// Upsert inserts or replaces a project by id and recomputes its bucket.
// A replacement whose status did not change keeps its display position;
// otherwise the project is appended to its new bucket.
func (s *Store) Upsert(p models.Project) error {
	if !p.Status.Valid() {
		return fmt.Errorf("project %d: %w: %q", p.ID, models.ErrUnknownStatus, p.Status)
	}

	stored := p.Clone()
	s.projects[p.ID] = &stored

	current, exists := s.location[p.ID]
	if exists && current == p.Status {
		return nil
	}
	if exists {
		s.detach(p.ID, current)
	}
	s.attach(p.ID, p.Status, len(s.buckets[p.Status]))
	return nil
}

// Remove deletes a project from all buckets. Returns false if it was not present.
func (s *Store) Remove(id types.ProjectID) bool {
	current, ok := s.location[id]
	if !ok {
		return false
	}
	s.detach(id, current)
	delete(s.projects, id)
	return true
}

// Get returns a copy of the project with the given id.
func (s *Store) Get(id types.ProjectID) (models.Project, bool) {
	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, false
	}
	return p.Clone(), true
}

// Has reports whether the project is on the board.
func (s *Store) Has(id types.ProjectID) bool {
	_, ok := s.projects[id]
	return ok
}

// Len returns the number of projects on the board.
func (s *Store) Len() int {
	return len(s.projects)
}

// IndexOf returns the bucket currently displaying the project and its position in it.
func (s *Store) IndexOf(id types.ProjectID) (models.Status, int, bool) {
	status, ok := s.location[id]
	if !ok {
		return "", -1, false
	}
	return status, slices.Index(s.buckets[status], id), true
}

// SnapshotForStatus returns copies of the projects in a bucket, in display order.
func (s *Store) SnapshotForStatus(status models.Status) []models.Project {
	ids := s.buckets[status]
	out := make([]models.Project, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.projects[id].Clone())
	}
	return out
}

// Snapshot returns every bucket.
func (s *Store) Snapshot() map[models.Status][]models.Project {
	out := make(map[models.Status][]models.Project, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		out[status] = s.SnapshotForStatus(status)
	}
	return out
}

// Reorder moves a project to destinationIndex inside the destination bucket.
// The index is clamped to the valid range. Reorder only changes display
// order: it never touches the project's status, so a cross-column move must
// be paired with a status transition in the same update step.
func (s *Store) Reorder(id types.ProjectID, destination models.Status, destinationIndex int) error {
	if !destination.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStatus, destination)
	}
	current, ok := s.location[id]
	if !ok {
		return fmt.Errorf("reorder project %d: %w", id, ErrUnknownProject)
	}

	s.detach(id, current)
	s.attach(id, destination, destinationIndex)
	return nil
}

// Replace swaps the whole board for a freshly loaded list of projects.
// Order within each bucket follows the order of the input.
func (s *Store) Replace(projects []models.Project) error {
	for _, p := range projects {
		if !p.Status.Valid() {
			return fmt.Errorf("project %d: %w: %q", p.ID, models.ErrUnknownStatus, p.Status)
		}
	}

	s.reset()
	for _, p := range projects {
		if err := s.Upsert(p); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the partition invariant: every project sits in exactly one
// bucket and that bucket matches its status.
func (s *Store) Validate() error {
	seen := make(map[types.ProjectID]models.Status, len(s.projects))
	for status, ids := range s.buckets {
		for _, id := range ids {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("project %d appears in %s and %s", id, prev, status)
			}
			seen[id] = status
			p, ok := s.projects[id]
			if !ok {
				return fmt.Errorf("bucket %s references missing project %d", status, id)
			}
			if p.Status != status {
				return fmt.Errorf("project %d has status %s but sits in bucket %s", id, p.Status, status)
			}
		}
	}
	if len(seen) != len(s.projects) {
		return fmt.Errorf("%d projects on the board but %d placed in buckets", len(s.projects), len(seen))
	}
	return nil
}

// setStatus writes a project's status and moves it to the matching bucket
// if it is not already displayed there. Only the coordinator calls this.
func (s *Store) setStatus(id types.ProjectID, status models.Status) bool {
	p, ok := s.projects[id]
	if !ok {
		return false
	}
	p.Status = status

	current := s.location[id]
	if current != status {
		s.detach(id, current)
		s.attach(id, status, len(s.buckets[status]))
	}
	return true
}

func (s *Store) detach(id types.ProjectID, status models.Status) {
	ids := s.buckets[status]
	if i := slices.Index(ids, id); i >= 0 {
		s.buckets[status] = slices.Delete(ids, i, i+1)
	}
	delete(s.location, id)
}

func (s *Store) attach(id types.ProjectID, status models.Status, index int) {
	ids := s.buckets[status]
	index = max(0, min(index, len(ids)))
	s.buckets[status] = slices.Insert(ids, index, id)
	s.location[id] = status
}
