package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/quadro/internal/app"
	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	db  *sql.DB // nil when the app was injected
	ctx context.Context
}

// NewCLI loads the configuration and opens the configured database
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &CLI{
		App:    app.New(db),
		Config: cfg,
		db:     db,
		ctx:    ctx,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if err := c.App.Close(); err != nil {
		return err
	}
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
