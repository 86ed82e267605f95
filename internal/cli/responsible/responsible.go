// Package responsible holds the cli commands for people assigned to projects
//
// e.g., quadro responsible ...
package responsible

import (
	"github.com/spf13/cobra"
)

// ResponsibleCmd returns the responsible parent command
func ResponsibleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "responsible",
		Aliases: []string{"people"},
		Short:   "Manage the people projects are assigned to",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}
