package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*ResponsibleRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ProjectRepo:     &ProjectRepo{db: db},
		ResponsibleRepo: &ResponsibleRepo{db: db},
	}
}

// Wrapper methods for ProjectRepo
func (r *Repository) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	return r.ProjectRepo.Create(ctx, p)
}

func (r *Repository) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return r.ProjectRepo.GetAll(ctx)
}

func (r *Repository) GetProjectByID(ctx context.Context, id types.ProjectID) (*models.Project, error) {
	return r.ProjectRepo.GetByID(ctx, id)
}

func (r *Repository) GetProjectsByStatus(ctx context.Context, status models.Status) ([]*models.Project, error) {
	return r.ProjectRepo.GetByStatus(ctx, status)
}

func (r *Repository) UpdateProject(ctx context.Context, p *models.Project) error {
	return r.ProjectRepo.Update(ctx, p)
}

func (r *Repository) DeleteProject(ctx context.Context, id types.ProjectID) error {
	return r.ProjectRepo.Delete(ctx, id)
}

// Wrapper methods for ResponsibleRepo
func (r *Repository) CreateResponsible(ctx context.Context, name, email, role string) (*models.Responsible, error) {
	return r.ResponsibleRepo.Create(ctx, name, email, role)
}

func (r *Repository) GetAllResponsibles(ctx context.Context) ([]*models.Responsible, error) {
	return r.ResponsibleRepo.GetAll(ctx)
}

func (r *Repository) GetResponsibleByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error) {
	return r.ResponsibleRepo.GetByID(ctx, id)
}

func (r *Repository) GetResponsibleByEmail(ctx context.Context, email string) (*models.Responsible, error) {
	return r.ResponsibleRepo.GetByEmail(ctx, email)
}

func (r *Repository) UpdateResponsible(ctx context.Context, res *models.Responsible) error {
	return r.ResponsibleRepo.Update(ctx, res)
}

func (r *Repository) DeleteResponsible(ctx context.Context, id types.ResponsibleID) error {
	return r.ResponsibleRepo.Delete(ctx, id)
}
