package responsible

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

const (
	maxNameLength = 100
	maxRoleLength = 50
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service defines all responsible-related business operations
type Service interface {
	// Read operations
	GetAllResponsibles(ctx context.Context) ([]*models.Responsible, error)
	GetResponsibleByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error)

	// Write operations
	CreateResponsible(ctx context.Context, req CreateResponsibleRequest) (*models.Responsible, error)
	UpdateResponsible(ctx context.Context, req UpdateResponsibleRequest) (*models.Responsible, error)
	DeleteResponsible(ctx context.Context, id types.ResponsibleID) error
}

// CreateResponsibleRequest encapsulates data for creating a responsible
type CreateResponsibleRequest struct {
	Name  string
	Email string
	Role  string
}

// UpdateResponsibleRequest changes only the fields that are set
type UpdateResponsibleRequest struct {
	ID    types.ResponsibleID
	Name  *string
	Email *string
	Role  *string
}

type repository interface {
	GetAllResponsibles(ctx context.Context) ([]*models.Responsible, error)
	GetResponsibleByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error)
	GetResponsibleByEmail(ctx context.Context, email string) (*models.Responsible, error)
	CreateResponsible(ctx context.Context, name, email, role string) (*models.Responsible, error)
	UpdateResponsible(ctx context.Context, res *models.Responsible) error
	DeleteResponsible(ctx context.Context, id types.ResponsibleID) error
}

type service struct {
	repo repository
}

// NewService creates a new responsible service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// GetAllResponsibles lists everyone ordered by name
func (s *service) GetAllResponsibles(ctx context.Context) ([]*models.Responsible, error) {
	return s.repo.GetAllResponsibles(ctx)
}

// GetResponsibleByID retrieves a specific responsible
func (s *service) GetResponsibleByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error) {
	if id <= 0 {
		return nil, ErrInvalidResponsibleID
	}
	res, err := s.repo.GetResponsibleByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return res, nil
}

// CreateResponsible validates and stores a new responsible. Emails are
// stored lowercased and must be unique.
func (s *service) CreateResponsible(ctx context.Context, req CreateResponsibleRequest) (*models.Responsible, error) {
	name, email, role := normalize(req.Name, req.Email, req.Role)
	if err := validate(name, email, role); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	res, err := s.repo.CreateResponsible(ctx, name, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create responsible: %w", err)
	}
	slog.Info("responsible created", "responsible_id", res.ID)
	return res, nil
}

// UpdateResponsible applies the provided fields to an existing responsible
func (s *service) UpdateResponsible(ctx context.Context, req UpdateResponsibleRequest) (*models.Responsible, error) {
	existing, err := s.GetResponsibleByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	name, email, role := existing.Name, existing.Email, existing.Role
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Role != nil {
		role = *req.Role
	}

	name, email, role = normalize(name, email, role)
	if err := validate(name, email, role); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, existing.ID); err != nil {
		return nil, err
	}

	existing.Name, existing.Email, existing.Role = name, email, role
	if err := s.repo.UpdateResponsible(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update responsible: %w", err)
	}
	return s.GetResponsibleByID(ctx, req.ID)
}

// DeleteResponsible removes a responsible and unassigns them from every project
func (s *service) DeleteResponsible(ctx context.Context, id types.ResponsibleID) error {
	if id <= 0 {
		return ErrInvalidResponsibleID
	}
	if err := s.repo.DeleteResponsible(ctx, id); err != nil {
		return notFound(err, id)
	}
	slog.Info("responsible deleted", "responsible_id", id)
	return nil
}

// ensureEmailFree fails when email belongs to someone other than self.
func (s *service) ensureEmailFree(ctx context.Context, email string, self types.ResponsibleID) error {
	other, err := s.repo.GetResponsibleByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case other.ID != self:
		return fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	return nil
}

func normalize(name, email, role string) (string, string, string) {
	return strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(role)
}

func validate(name, email, role string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(role) > maxRoleLength {
		return ErrRoleTooLong
	}
	return nil
}

func notFound(err error, id types.ResponsibleID) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrResponsibleNotFound, id)
	}
	return err
}
