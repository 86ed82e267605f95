// Package dnd turns drag gestures on the board into reorders and status transitions.
package dnd

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNotDragging    = errors.New("no drag in progress")
	ErrSourceMismatch = errors.New("project is not in the source column")
)

// Phase is the gesture state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

func (p Phase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// DropKind says what a finished gesture did.
type DropKind int

const (
	// DropCancelled means nothing was mutated
	DropCancelled DropKind = iota
	// DropSameColumn means the card was reordered inside its column
	DropSameColumn
	// DropCrossColumn means the card moved and a transition was started
	DropCrossColumn
)

func (k DropKind) String() string {
	switch k {
	case DropSameColumn:
		return "same column"
	case DropCrossColumn:
		return "cross column"
	default:
		return "cancelled"
	}
}

// Position is a slot on the board.
type Position struct {
	Status models.Status
	Index  int
}

// Drag describes the card being dragged.
type Drag struct {
	ProjectID types.ProjectID
	Origin    Position
	Hover     Position
}

// DropResult is returned by OnDrop. Request is set for cross column drops and
// must be run and handed back to Resolve.
type DropResult struct {
	Kind        DropKind
	ProjectID   types.ProjectID
	Source      models.Status
	Destination Position
	Request     *board.Request
}

// Reconciler keeps a card's position and its status consistent across a drop
// and the transition it triggers. It shares the board's single goroutine.
type Reconciler struct {
	coord *board.Coordinator
	store *board.Store

	phase  Phase
	active Drag

	// origins remembers where a cross column drop started until its transition settles
	origins map[types.ProjectID]Position
}

// NewReconciler creates a reconciler driving coord and its store.
func NewReconciler(coord *board.Coordinator) *Reconciler {
	return &Reconciler{
		coord:   coord,
		store:   coord.Store(),
		origins: make(map[types.ProjectID]Position),
	}
}

// Phase returns the current gesture state.
func (r *Reconciler) Phase() Phase {
	return r.phase
}

// Dragging reports whether a gesture is capturing input.
func (r *Reconciler) Dragging() bool {
	return r.phase == PhaseDragging
}

// Active returns the gesture in progress.
func (r *Reconciler) Active() (Drag, bool) {
	return r.active, r.phase == PhaseDragging
}

// Begin picks up a card. The store is not touched until the drop.
func (r *Reconciler) Begin(id types.ProjectID) error {
	if r.phase == PhaseDragging {
		return ErrDragInProgress
	}
	status, index, ok := r.store.IndexOf(id)
	if !ok {
		return fmt.Errorf("drag project %d: %w", id, board.ErrUnknownProject)
	}
	origin := Position{Status: status, Index: index}
	r.active = Drag{ProjectID: id, Origin: origin, Hover: origin}
	r.phase = PhaseDragging
	return nil
}

// MoveHover changes where the dragged card would land.
func (r *Reconciler) MoveHover(status models.Status, index int) error {
	if r.phase != PhaseDragging {
		return ErrNotDragging
	}
	r.active.Hover = Position{Status: status, Index: max(0, index)}
	return nil
}

// Cancel abandons the gesture without mutating anything.
func (r *Reconciler) Cancel() {
	r.phase = PhaseIdle
	r.active = Drag{}
}

// Drop releases the active gesture at its hover position.
func (r *Reconciler) Drop() (DropResult, error) {
	if r.phase != PhaseDragging {
		return DropResult{}, ErrNotDragging
	}
	d := r.active
	return r.OnDrop(d.ProjectID, d.Origin.Status, d.Hover.Status, d.Hover.Index)
}

// OnDrop applies a drop. A drop on the source column only reorders. A drop on
// another column reorders for immediate placement and starts a transition; if
// the transition is refused up front the reorder is undone before returning.
// A destination that is not a column cancels the gesture.
//
// The gesture always ends in PhaseIdle.
func (r *Reconciler) OnDrop(id types.ProjectID, source, destination models.Status, index int) (DropResult, error) {
	r.Cancel()

	result := DropResult{
		Kind:        DropCancelled,
		ProjectID:   id,
		Source:      source,
		Destination: Position{Status: destination, Index: index},
	}
	if !destination.Valid() {
		return result, nil
	}

	current, originIndex, ok := r.store.IndexOf(id)
	if !ok {
		return result, fmt.Errorf("drop project %d: %w", id, board.ErrUnknownProject)
	}
	if current != source {
		return result, fmt.Errorf("drop project %d from %s: %w", id, source, ErrSourceMismatch)
	}

	if destination == source {
		if err := r.store.Reorder(id, destination, index); err != nil {
			return result, err
		}
		result.Kind = DropSameColumn
		return result, nil
	}

	if err := r.store.Reorder(id, destination, index); err != nil {
		return result, err
	}
	req, err := r.coord.Transition(id, destination)
	if err != nil {
		if undoErr := r.store.Reorder(id, source, originIndex); undoErr != nil {
			return result, errors.Join(err, undoErr)
		}
		return result, err
	}

	r.origins[id] = Position{Status: source, Index: originIndex}
	result.Kind = DropCrossColumn
	result.Request = req
	return result, nil
}

// Settle finishes the bookkeeping for a resolved transition. After a failed
// cross column drop the card goes back to the index it was dragged from.
func (r *Reconciler) Settle(outcome board.Outcome) {
	origin, ok := r.origins[outcome.ProjectID]
	if !ok {
		return
	}
	delete(r.origins, outcome.ProjectID)

	if !outcome.Failed() {
		return
	}
	if status, _, ok := r.store.IndexOf(outcome.ProjectID); ok && status == origin.Status {
		_ = r.store.Reorder(outcome.ProjectID, origin.Status, origin.Index)
	}
}

// Resolve hands a response to the coordinator and settles the drop it came from.
// Responses for transitions not started by a drop pass straight through.
func (r *Reconciler) Resolve(resp board.Response) board.Outcome {
	outcome := r.coord.Resolve(resp)
	r.Settle(outcome)
	return outcome
}

// DropSync runs a drop and its transition on the calling goroutine.
func (r *Reconciler) DropSync(ctx context.Context, id types.ProjectID, source, destination models.Status, index int) (DropResult, board.Outcome, error) {
	result, err := r.OnDrop(id, source, destination, index)
	if err != nil || result.Request == nil {
		return result, board.Outcome{}, err
	}
	return result, r.Resolve(result.Request.Do(ctx)), nil
}
