// Package use holds all cli commands related to setting contextual information
// e.g., quadro use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

Examples:
  eval $(quadro use server http://127.0.0.1:8420)  # Point the board at a server
  eval $(quadro use server --clear)                 # Back to the local database
  quadro use server --show                          # Show the current server`,
	}

	cmd.AddCommand(ServerCmd())

	return cmd
}
