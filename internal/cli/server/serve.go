// Package server holds the command that runs the REST server
package server

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/logging"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the project status server",
		Long: `Serve the project REST API that boards and the CLI can talk to.

Project statuses and schedule metrics are recalculated at startup and then
every --recalc interval, so projects turn late as days pass.

Examples:
  quadro serve
  quadro serve --addr=0.0.0.0:8420 --recalc=30m
`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default from config, "+config.DefaultServerAddr+")")
	cmd.Flags().Duration("recalc", api.DefaultRecalcInterval, "How often statuses are recalculated, 0 disables")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// The server owns no terminal UI, so it logs to stderr
	logging.Install(os.Stderr)

	ctx := cmd.Context()
	addr, _ := cmd.Flags().GetString("addr")
	recalc, _ := cmd.Flags().GetDuration("recalc")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return &cli.StatusError{Code: cli.ExitError, Err: err}
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	if addr == "" {
		addr = cliInstance.Config.ServerAddr
	}

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(
		cliInstance.App.ProjectService,
		cliInstance.App.ResponsibleService,
		api.WithRecalcInterval(recalc),
	)

	slog.Info("quadro server starting", "addr", addr, "pid", os.Getpid(), "recalc", recalc.String())
	start := time.Now()

	if err := srv.Run(ctx, addr); err != nil {
		slog.Error("server error", "error", err)
		return &cli.StatusError{Code: cli.ExitError, Err: err}
	}

	slog.Info("quadro server shut down gracefully", "uptime", time.Since(start).Round(time.Second).String())
	return nil
}
