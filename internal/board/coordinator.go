package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/notify"
	"github.com/thenoetrevino/quadro/internal/types"
)

// DefaultFailureMessage is shown when a failed status change carries no server message.
const DefaultFailureMessage = "Failed to change project status"

// ErrStaleReload is returned by ApplyReload when a newer reload was already applied.
var ErrStaleReload = errors.New("reload superseded by a newer one")

// Remote is the project service the coordinator writes through.
type Remote interface {
	FetchAllProjects(ctx context.Context) ([]models.Project, error)
	ChangeStatus(ctx context.Context, id types.ProjectID, target models.Status) (*models.Project, error)
}

// PendingTransition is an unconfirmed optimistic status change.
type PendingTransition struct {
	ProjectID types.ProjectID
	Previous  models.Status
	Target    models.Status
	Token     types.RequestToken
}

// Request is the remote half of a transition. Do may run on any goroutine;
// its Response must be handed back to Coordinator.Resolve on the board's goroutine.
type Request struct {
	PendingTransition
	remote Remote
}

// Do performs the remote status change.
func (r *Request) Do(ctx context.Context) Response {
	project, err := r.remote.ChangeStatus(ctx, r.ProjectID, r.Target)
	return Response{
		Token:     r.Token,
		ProjectID: r.ProjectID,
		Target:    r.Target,
		Project:   project,
		Err:       err,
	}
}

// Response carries the result of Request.Do back to the coordinator.
type Response struct {
	Token     types.RequestToken
	ProjectID types.ProjectID
	Target    models.Status
	Project   *models.Project
	Err       error
}

// OutcomeKind describes how a transition ended.
type OutcomeKind int

const (
	// OutcomeCommitted means the server accepted the change
	OutcomeCommitted OutcomeKind = iota
	// OutcomeRemoteRejected means the server refused and the status was reverted
	OutcomeRemoteRejected
	// OutcomeNetworkFailure means the request failed and the status was reverted
	OutcomeNetworkFailure
	// OutcomeStale means the response was ignored because a reload superseded it
	OutcomeStale
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCommitted:
		return "committed"
	case OutcomeRemoteRejected:
		return "remote rejected"
	case OutcomeNetworkFailure:
		return "network failure"
	case OutcomeStale:
		return "stale"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of resolving a transition.
type Outcome struct {
	Kind      OutcomeKind
	ProjectID types.ProjectID
	Previous  models.Status
	Target    models.Status
	Project   *models.Project // authoritative record on commit
	Message   string          // text shown to the user, empty when stale

	// Resync is set when the request failed in transit. The server may still
	// have applied the change, so the caller should reload the board.
	Resync bool
}

// Failed reports whether the optimistic change was rolled back.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeRemoteRejected || o.Kind == OutcomeNetworkFailure
}

// ReloadRequest is the remote half of a full board reload.
type ReloadRequest struct {
	seq       uint64
	watermark types.RequestToken
	remote    Remote
}

// Do fetches every project.
func (r *ReloadRequest) Do(ctx context.Context) ReloadResponse {
	projects, err := r.remote.FetchAllProjects(ctx)
	return ReloadResponse{seq: r.seq, watermark: r.watermark, Projects: projects, Err: err}
}

// ReloadResponse is handed back to Coordinator.ApplyReload.
type ReloadResponse struct {
	seq       uint64
	watermark types.RequestToken
	Projects  []models.Project
	Err       error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for transition tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFailureMessage overrides DefaultFailureMessage.
func WithFailureMessage(msg string) Option {
	return func(c *Coordinator) {
		if msg != "" {
			c.failureMessage = msg
		}
	}
}

// Coordinator applies status changes to the store immediately and then
// confirms or rolls them back when the remote answer arrives.
//
// Like Store, a Coordinator must only be used from one goroutine.
// Only Request.Do and ReloadRequest.Do may run elsewhere.
type Coordinator struct {
	store    *Store
	remote   Remote
	notifier notify.Notifier
	logger   *slog.Logger

	pending   map[types.ProjectID]PendingTransition
	lastToken types.RequestToken

	reloadSeq      uint64
	appliedReload  uint64
	failureMessage string
}

// NewCoordinator creates a coordinator over store. A nil notifier discards notifications.
func NewCoordinator(store *Store, remote Remote, notifier notify.Notifier, opts ...Option) *Coordinator {
	if notifier == nil {
		notifier = notify.Discard
	}
	c := &Coordinator{
		store:          store,
		remote:         remote,
		notifier:       notifier,
		logger:         slog.Default(),
		pending:        make(map[types.ProjectID]PendingTransition),
		failureMessage: DefaultFailureMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the board the coordinator writes to.
func (c *Coordinator) Store() *Store {
	return c.store
}

// Pending returns the unconfirmed transition for a project, if any.
func (c *Coordinator) Pending(id types.ProjectID) (PendingTransition, bool) {
	p, ok := c.pending[id]
	return p, ok
}

// PendingCount returns the number of transitions awaiting a response.
func (c *Coordinator) PendingCount() int {
	return len(c.pending)
}

// Transition validates a status change, applies it to the store and returns
// the request that confirms it remotely. Nothing is mutated when an error is returned.
func (c *Coordinator) Transition(id types.ProjectID, target models.Status) (*Request, error) {
	project, ok := c.store.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, ErrUnknownProject)
	}
	if _, busy := c.pending[id]; busy {
		return nil, fmt.Errorf("project %d: %w", id, ErrTransitionAlreadyPending)
	}
	if err := models.CheckTransition(project.Status, target); err != nil {
		if errors.Is(err, models.ErrNoOpTransition) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNoOpTransition)
		}
		return nil, fmt.Errorf("project %d: %w: %w", id, ErrInvalidTransition, err)
	}

	c.lastToken++
	pending := PendingTransition{
		ProjectID: id,
		Previous:  project.Status,
		Target:    target,
		Token:     c.lastToken,
	}
	c.pending[id] = pending
	c.store.setStatus(id, target)

	c.logger.Debug("optimistic transition applied",
		"project_id", id, "from", pending.Previous, "to", target, "token", pending.Token)

	return &Request{PendingTransition: pending, remote: c.remote}, nil
}

// Resolve settles a transition with the remote answer.
func (c *Coordinator) Resolve(resp Response) Outcome {
	pending, ok := c.pending[resp.ProjectID]
	if !ok || pending.Token != resp.Token {
		c.logger.Debug("ignoring stale transition response", "project_id", resp.ProjectID, "token", resp.Token)
		return Outcome{Kind: OutcomeStale, ProjectID: resp.ProjectID, Target: resp.Target}
	}
	delete(c.pending, resp.ProjectID)

	outcome := Outcome{
		ProjectID: pending.ProjectID,
		Previous:  pending.Previous,
		Target:    pending.Target,
	}

	err := resp.Err
	if err == nil && resp.Project == nil {
		err = Rejected(0, fmt.Sprintf("server returned no record for project %d", pending.ProjectID))
	}
	if err == nil {
		if resp.Project.ID != pending.ProjectID {
			err = Rejected(0, fmt.Sprintf("server returned project %d for project %d", resp.Project.ID, pending.ProjectID))
		} else if upsertErr := c.store.Upsert(*resp.Project); upsertErr != nil {
			err = Rejected(0, upsertErr.Error())
		}
	}

	if err != nil {
		return c.rollback(pending, outcome, err)
	}

	confirmed := resp.Project.Clone()
	outcome.Project = &confirmed
	outcome.Kind = OutcomeCommitted
	outcome.Message = fmt.Sprintf("%s moved to %s", c.projectLabel(pending.ProjectID), pending.Target.Title())
	c.notifier.Notify(notify.KindSuccess, outcome.Message)

	c.logger.Info("status transition committed",
		"project_id", pending.ProjectID, "from", pending.Previous, "to", pending.Target)
	return outcome
}

func (c *Coordinator) rollback(pending PendingTransition, outcome Outcome, err error) Outcome {
	kind, message := classifyFailure(err)
	if message == "" {
		message = c.failureMessage
	}

	c.store.setStatus(pending.ProjectID, pending.Previous)

	if kind == NetworkFailure {
		outcome.Kind = OutcomeNetworkFailure
		outcome.Resync = true
	} else {
		outcome.Kind = OutcomeRemoteRejected
	}
	outcome.Message = message
	c.notifier.Notify(notify.KindError, message)

	c.logger.Warn("status transition rolled back",
		"project_id", pending.ProjectID, "from", pending.Previous, "to", pending.Target,
		"kind", kind, "error", err)
	return outcome
}

// TransitionSync runs a transition to completion on the calling goroutine.
func (c *Coordinator) TransitionSync(ctx context.Context, id types.ProjectID, target models.Status) (Outcome, error) {
	req, err := c.Transition(id, target)
	if err != nil {
		return Outcome{}, err
	}
	return c.Resolve(req.Do(ctx)), nil
}

// BeginReload starts a full reload. Every transition issued before this call
// is invalidated once the reload is applied.
func (c *Coordinator) BeginReload() *ReloadRequest {
	c.reloadSeq++
	return &ReloadRequest{seq: c.reloadSeq, watermark: c.lastToken, remote: c.remote}
}

// ApplyReload replaces the store with the fetched projects.
//
// Pending transitions issued before the reload began are dropped, so their
// responses resolve as stale. Transitions issued while the fetch was in
// flight stay pending and keep their optimistic status on the new board.
func (c *Coordinator) ApplyReload(resp ReloadResponse) error {
	if resp.Err != nil {
		return fmt.Errorf("reload projects: %w", resp.Err)
	}
	if resp.seq <= c.appliedReload {
		return ErrStaleReload
	}

	// surviving optimistic cards keep the slot they were dropped into
	slots := make(map[types.ProjectID]int, len(c.pending))
	for id, p := range c.pending {
		if p.Token <= resp.watermark {
			continue
		}
		if status, index, ok := c.store.IndexOf(id); ok && status == p.Target {
			slots[id] = index
		}
	}

	if err := c.store.Replace(resp.Projects); err != nil {
		return fmt.Errorf("reload projects: %w", err)
	}
	c.appliedReload = resp.seq

	for id, p := range c.pending {
		if p.Token <= resp.watermark || !c.store.Has(id) {
			delete(c.pending, id)
			continue
		}
		c.store.setStatus(id, p.Target)
		if index, ok := slots[id]; ok {
			_ = c.store.Reorder(id, p.Target, index)
		}
	}

	c.logger.Debug("board reloaded", "projects", c.store.Len(), "pending", len(c.pending))
	return nil
}

// Reload fetches and applies a full reload on the calling goroutine.
func (c *Coordinator) Reload(ctx context.Context) error {
	return c.ApplyReload(c.BeginReload().Do(ctx))
}

func (c *Coordinator) projectLabel(id types.ProjectID) string {
	if p, ok := c.store.projects[id]; ok && p.Name != "" {
		return fmt.Sprintf("%q", p.Name)
	}
	return fmt.Sprintf("Project %d", id)
}
