package project

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/cli/styles"
	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	"github.com/thenoetrevino/quadro/internal/types"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project. The status is derived from the dates.

Examples:
  # Simple project (human-readable output)
  quadro project create --name="Billing revamp"

  # Quiet mode for bash capture
  PROJECT_ID=$(quadro project create --name="Billing revamp" --quiet)

  # Planned and assigned
  quadro project create \
    --name="Billing revamp" \
    --responsible=1 --responsible=3 \
    --planned-start=2025-03-01 --planned-end=2025-04-15
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().IntSlice("responsible", nil, "Responsible ID (repeatable)")
	addDateFlags(cmd)

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func addDateFlags(cmd *cobra.Command) {
	cmd.Flags().String("planned-start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().String("planned-end", "", "Planned end date (YYYY-MM-DD)")
	cmd.Flags().String("actual-start", "", "Actual start date (YYYY-MM-DD)")
	cmd.Flags().String("actual-end", "", "Actual end date (YYYY-MM-DD)")
}

func createRequest(cmd *cobra.Command) (projectservice.CreateProjectRequest, error) {
	var req projectservice.CreateProjectRequest
	var err error

	name, _ := cmd.Flags().GetString("name")
	req.Name = strings.TrimSpace(name)

	ids, _ := cmd.Flags().GetIntSlice("responsible")
	for _, id := range ids {
		req.ResponsibleIDs = append(req.ResponsibleIDs, types.ResponsibleIDFromInt(id))
	}

	if req.PlannedStart, err = cli.GetDateFlag(cmd, "planned-start"); err != nil {
		return req, err
	}
	if req.PlannedEnd, err = cli.GetDateFlag(cmd, "planned-end"); err != nil {
		return req, err
	}
	if req.ActualStart, err = cli.GetDateFlag(cmd, "actual-start"); err != nil {
		return req, err
	}
	if req.ActualEnd, err = cli.GetDateFlag(cmd, "actual-end"); err != nil {
		return req, err
	}
	return req, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	req, err := createRequest(cmd)
	if err != nil {
		return formatter.Fail("VALIDATION_ERROR", cli.ExitValidation, err)
	}
	if req.Name == "" {
		return formatter.Fail("VALIDATION_ERROR", cli.ExitValidation, projectservice.ErrEmptyName)
	}

	// Initialize CLI
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.CreateProject(ctx, req)
	if err != nil {
		return formatter.FailService(err)
	}

	// Output based on mode (JSON/Quiet/Human)
	if formatter.Quiet {
		fmt.Printf("%d\n", project.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{"project": api.NewProjectResponse(project)})
	}

	fmt.Printf("✓ Project '%s' created successfully (ID: %d)\n", project.Name, project.ID)
	fmt.Printf("  Status: %s\n", styles.Status(project.Status))
	return nil
}
