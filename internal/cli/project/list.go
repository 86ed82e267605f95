package project

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/models"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long: `List all projects grouped by status, or only those in one status.

Examples:
  quadro project list
  quadro project list --status late --json
`,
		RunE: runList,
	}

	cmd.Flags().String("status", "", "Only list projects in this status")
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	var projects []*models.Project
	if cmd.Flags().Changed("status") {
		status, err := cli.GetStatusFlag(cmd, "status")
		if err != nil {
			return formatter.Fail("VALIDATION_ERROR", cli.ExitValidation, err)
		}
		projects, err = cliInstance.App.ProjectService.GetProjectsByStatus(ctx, status)
		if err != nil {
			return formatter.Fail("PROJECT_FETCH_ERROR", cli.ExitError, err)
		}
	} else {
		projects, err = cliInstance.App.ProjectService.GetAllProjects(ctx)
		if err != nil {
			return formatter.Fail("PROJECT_FETCH_ERROR", cli.ExitError, err)
		}
	}

	if formatter.Quiet {
		for _, p := range projects {
			fmt.Printf("%d\n", p.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{"projects": toJSON(projects)})
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Printf("Found %d projects:\n", len(projects))
	for _, status := range models.AllStatuses {
		printed := false
		for _, p := range projects {
			if p.Status != status {
				continue
			}
			if !printed {
				fmt.Printf("\n%s\n", status.Title())
				printed = true
			}
			fmt.Println(summary(p))
		}
	}
	return nil
}
