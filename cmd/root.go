// Package cmd is the quadro command tree
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/cli/board"
	"github.com/thenoetrevino/quadro/internal/cli/project"
	"github.com/thenoetrevino/quadro/internal/cli/responsible"
	"github.com/thenoetrevino/quadro/internal/cli/server"
	"github.com/thenoetrevino/quadro/internal/cli/use"
	"github.com/thenoetrevino/quadro/internal/launcher"
)

var rootCmd = &cobra.Command{
	Use:   "quadro",
	Short: "Quadro - a project status board",
	Long: `Quadro tracks projects through To Start, In Progress, Late and Done.

Run without a command to open the board.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.Launch(launcher.Options{})
	},
	// Commands report their own errors through the output formatter
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(server.ServeCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(responsible.ResponsibleCmd())
	rootCmd.AddCommand(use.UseCmd())
}

// Execute runs the command tree until it finishes or the process is signalled
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
