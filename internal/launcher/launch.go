// Package launcher wires configuration, logging and storage together and
// starts the interactive board.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thenoetrevino/quadro/internal/app"
	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/client"
	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/database"
	"github.com/thenoetrevino/quadro/internal/logging"
	"github.com/thenoetrevino/quadro/internal/tui"
)

// Options override configuration values for a single launch
type Options struct {
	// ServerURL talks to a running server instead of the local database
	ServerURL string
}

// Launch starts the TUI application
func Launch(opts Options) error {
	// Initialize logging to file before anything else
	logFile, err := logging.Init("")
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}

	remote, closeRemote, err := openRemote(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRemote()

	if err := tui.Run(ctx, cfg, remote); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// openRemote picks the HTTP client when a server is configured and the
// in-process services otherwise.
func openRemote(ctx context.Context, cfg *config.Config) (board.Remote, func(), error) {
	if cfg.ServerURL != "" {
		slog.Info("using remote server", "url", cfg.ServerURL)
		return client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout()), func() {}, nil
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application := app.New(db, app.WithLogger(slog.Default()))
	if n, err := application.ProjectService.RecalculateAll(ctx); err != nil {
		slog.Warn("failed to recalculate project statuses", "error", err)
	} else if n > 0 {
		slog.Info("recalculated project statuses", "changed", n)
	}

	// database cleanup
	closeDB := func() {
		// Create drain context with 5-second timeout
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer drainCancel()

		// Allow time for in-flight status changes to complete
		select {
		case <-drainCtx.Done():
			slog.Info("drain period complete, closing database")
		case <-time.After(100 * time.Millisecond):
		}

		if err := application.Close(); err != nil {
			slog.Error("error closing app", "error", err)
		}
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}
	return application.Remote(), closeDB, nil
}
