// Command quadro-server runs only the REST server, for service managers
// that should not ship the board.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/cli/server"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cmd := server.ServeCmd()
	cmd.Use = "quadro-server"
	cmd.SilenceUsage = true

	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error("server exited", "error", err)
		cancel()
		os.Exit(cli.ExitCode(err))
	}
}
