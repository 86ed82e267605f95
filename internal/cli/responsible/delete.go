package responsible

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/types"
)

// DeleteCmd returns the responsible delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a person",
		Long:  "Remove a person by ID. They are unassigned from every project (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Responsible ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	personID := types.ResponsibleIDFromInt(id)
	person, err := cliInstance.App.ResponsibleService.GetResponsibleByID(ctx, personID)
	if err != nil {
		return formatter.FailService(err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.Confirm(fmt.Sprintf("Delete %s <%s>?", person.Name, person.Email)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.ResponsibleService.DeleteResponsible(ctx, personID); err != nil {
		return formatter.FailService(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{"responsible_id": id})
	}

	fmt.Printf("✓ Responsible %d deleted successfully\n", id)
	return nil
}
