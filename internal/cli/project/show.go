package project

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/types"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one project with its schedule metrics",
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cli.AddOutputFlags(cmd, "Minimal output (status only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	id, _ := cmd.Flags().GetInt("id")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	p, err := cliInstance.App.ProjectService.GetProjectByID(ctx, types.ProjectIDFromInt(id))
	if err != nil {
		return formatter.FailService(err)
	}

	if formatter.Quiet {
		fmt.Println(p.Status)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{"project": api.NewProjectResponse(p)})
	}

	fmt.Println(card(p))
	return nil
}
