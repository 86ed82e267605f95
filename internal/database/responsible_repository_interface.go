package database

import (
	"context"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// ResponsibleReader defines read operations for responsibles.
type ResponsibleReader interface {
	GetAllResponsibles(ctx context.Context) ([]*models.Responsible, error)
	GetResponsibleByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error)
	GetResponsibleByEmail(ctx context.Context, email string) (*models.Responsible, error)
}

// ResponsibleWriter defines write operations for responsibles.
type ResponsibleWriter interface {
	CreateResponsible(ctx context.Context, name, email, role string) (*models.Responsible, error)
	UpdateResponsible(ctx context.Context, res *models.Responsible) error
	DeleteResponsible(ctx context.Context, id types.ResponsibleID) error
}

// ResponsibleRepository combines all responsible-related operations.
type ResponsibleRepository interface {
	ResponsibleReader
	ResponsibleWriter
}
