package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/client"
	"github.com/thenoetrevino/quadro/internal/database"
	"github.com/thenoetrevino/quadro/internal/seed"
	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
)

// App holds all application services and provides dependency injection.
// This is the main application container shared by the CLI, the server and
// the in-process board.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	logger *slog.Logger

	// Service layer (business logic)
	ProjectService     projectservice.Service
	ResponsibleService responsibleservice.Service
}

// New creates a new App with all services initialized over db.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	repo := database.NewRepository(db)
	return &App{
		repo:               repo,
		logger:             cfg.logger,
		ProjectService:     projectservice.NewService(repo, cfg.clock),
		ResponsibleService: responsibleservice.NewService(repo),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Remote exposes the project service to the board without a network hop.
func (a *App) Remote() board.Remote {
	return client.NewLocal(a.ProjectService)
}

// Importer loads seed files through the services.
func (a *App) Importer() *seed.Importer {
	return seed.NewImporter(a.ProjectService, a.ResponsibleService)
}

// Logger is the logger the app was built with.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close performs cleanup of application resources.
// The database handle belongs to the caller.
func (a *App) Close() error {
	return nil
}
