package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

const maxNameLength = 100

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectByID(ctx context.Context, id types.ProjectID) (*models.Project, error)
	GetProjectsByStatus(ctx context.Context, status models.Status) ([]*models.Project, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id types.ProjectID) error
	ChangeStatus(ctx context.Context, id types.ProjectID, target models.Status) (*models.Project, error)
	RecalculateAll(ctx context.Context) (int, error)
}

// CreateProjectRequest encapsulates data for creating a project.
// Status is never supplied: it is derived from the dates.
type CreateProjectRequest struct {
	Name           string
	ResponsibleIDs []types.ResponsibleID
	PlannedStart   *time.Time
	PlannedEnd     *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
}

// UpdateProjectRequest replaces every editable field of a project
type UpdateProjectRequest struct {
	ID types.ProjectID
	CreateProjectRequest
}

// repository defines the data access methods needed by the project service
// This interface is private to the service layer
type repository interface {
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	GetProjectByID(ctx context.Context, id types.ProjectID) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectsByStatus(ctx context.Context, status models.Status) ([]*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id types.ProjectID) error

	GetResponsibleByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error)
}

// service implements Service interface with private repository
type service struct {
	repo repository
	now  Clock
}

// NewService creates a new project service. A nil clock uses time.Now.
func NewService(repo repository, now Clock) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}
}

func (s *service) today() time.Time {
	return models.Day(s.now())
}

// GetAllProjects retrieves all projects
func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetAllProjects(ctx)
}

// GetProjectByID retrieves a specific project
func (s *service) GetProjectByID(ctx context.Context, id types.ProjectID) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	p, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return p, nil
}

// GetProjectsByStatus lists the projects currently in one status
func (s *service) GetProjectsByStatus(ctx context.Context, status models.Status) ([]*models.Project, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.GetProjectsByStatus(ctx, status)
}

// CreateProject validates the request, derives status and metrics, and stores the project
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	p := &models.Project{}
	if err := s.fill(ctx, p, req); err != nil {
		return nil, err
	}
	ApplyMetrics(p, s.today())

	created, err := s.repo.CreateProject(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	slog.Info("project created", "project_id", created.ID, "status", created.Status)
	return created, nil
}

// UpdateProject replaces a project's fields and re-derives its status
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	existing, err := s.GetProjectByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.fill(ctx, existing, req.CreateProjectRequest); err != nil {
		return nil, err
	}
	ApplyMetrics(existing, s.today())

	if err := s.repo.UpdateProject(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.GetProjectByID(ctx, req.ID)
}

// DeleteProject removes a project
func (s *service) DeleteProject(ctx context.Context, id types.ProjectID) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return notFound(err, id)
	}
	slog.Info("project deleted", "project_id", id)
	return nil
}

// ChangeStatus moves a project to target, applying the date side effects of
// that particular move. The status is then re-derived from the dates; if the
// result is not target the change is refused and nothing is stored.
func (s *service) ChangeStatus(ctx context.Context, id types.ProjectID, target models.Status) (*models.Project, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	existing, err := s.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == target {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInStatus, target.Title())
	}

	today := s.today()
	candidate := existing.Clone()
	if err := applyTransition(&candidate, target, today); err != nil {
		return nil, err
	}
	ApplyMetrics(&candidate, today)

	if candidate.Status != target {
		return nil, fmt.Errorf("%w: the dates put the project in %s; adjust them to make this change",
			ErrTransitionBlocked, candidate.Status.Title())
	}

	if err := s.repo.UpdateProject(ctx, &candidate); err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	slog.Info("project status changed", "project_id", id, "from", existing.Status, "to", target)
	return s.GetProjectByID(ctx, id)
}

// RecalculateAll re-derives status and metrics for every project as of today
// and stores the ones that changed. Returns how many were updated.
func (s *service) RecalculateAll(ctx context.Context) (int, error) {
	projects, err := s.repo.GetAllProjects(ctx)
	if err != nil {
		return 0, err
	}

	today := s.today()
	updated := 0
	for _, p := range projects {
		prev := *p
		ApplyMetrics(p, today)
		if prev.Status == p.Status && prev.DaysLate == p.DaysLate && prev.RemainingPercent == p.RemainingPercent {
			continue
		}
		if err := s.repo.UpdateProject(ctx, p); err != nil {
			return updated, fmt.Errorf("failed to recalculate project %d: %w", p.ID, err)
		}
		updated++
	}
	return updated, nil
}

// fill validates req and copies it onto p, resolving responsible ids.
func (s *service) fill(ctx context.Context, p *models.Project, req CreateProjectRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if req.PlannedStart != nil && req.PlannedEnd != nil && req.PlannedEnd.Before(*req.PlannedStart) {
		return ErrInvalidDates
	}

	refs, err := s.resolveResponsibles(ctx, req.ResponsibleIDs)
	if err != nil {
		return err
	}

	p.Name = name
	p.Responsibles = refs
	p.PlannedStart = dayOrNil(req.PlannedStart)
	p.PlannedEnd = dayOrNil(req.PlannedEnd)
	p.ActualStart = dayOrNil(req.ActualStart)
	p.ActualEnd = dayOrNil(req.ActualEnd)
	return nil
}

func (s *service) resolveResponsibles(ctx context.Context, ids []types.ResponsibleID) ([]models.ResponsibleRef, error) {
	refs := make([]models.ResponsibleRef, 0, len(ids))
	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			continue
		}
		r, err := s.repo.GetResponsibleByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %d", ErrResponsibleNotFound, id)
			}
			return nil, err
		}
		refs = append(refs, r.Ref())
	}
	return refs, nil
}

func dayOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	return models.DayPtr(*t)
}

func notFound(err error, id types.ProjectID) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrProjectNotFound, id)
	}
	return err
}
