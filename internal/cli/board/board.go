// Package board holds the command that opens the interactive board
package board

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/launcher"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive project board",
		Long: `Open the project board in the terminal.

Without --server (or QUADRO_SERVER_URL) the board reads and writes the local
database directly.

Keys: h/l move between columns, j/k between projects, s changes status,
space grabs a card (arrows move it, enter drops, esc cancels), r reloads,
x dismisses a notification, ? shows every key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			return launcher.Launch(launcher.Options{ServerURL: server})
		},
	}

	cmd.Flags().String("server", "", "URL of a running quadro server")

	return cmd
}
