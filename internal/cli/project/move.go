package project

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/cli/styles"
	"github.com/thenoetrevino/quadro/internal/client"
	"github.com/thenoetrevino/quadro/internal/types"
)

// MoveCmd returns the project move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Change a project's status",
		Long: `Change a project's status the same way the board does. The move is
refused when the project's dates do not allow it.

Examples:
  quadro project move --id=4 --status=in-progress
  quadro project move --id=4 --status=done --server=http://127.0.0.1:8420
`,
		RunE: runMove,
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	cmd.Flags().String("status", "", "Target status (required)")
	for _, name := range []string{"id", "status"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("Error marking flag as required", "error", err)
		}
	}
	cmd.Flags().String("server", "", "Send the change to a running server instead of the local database")

	cli.AddOutputFlags(cmd, "Minimal output (new status only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, _ := cmd.Flags().GetInt("id")
	serverURL, _ := cmd.Flags().GetString("server")
	target, err := cli.GetStatusFlag(cmd, "status")
	if err != nil {
		return formatter.Fail("VALIDATION_ERROR", cli.ExitValidation, err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	remote := cliInstance.App.Remote()
	if serverURL != "" {
		remote = client.NewHTTPClient(serverURL, cliInstance.Config.RequestTimeout())
	}

	coord := board.NewCoordinator(board.NewStore(), remote, nil, board.WithLogger(slog.Default()))
	if err := coord.Reload(ctx); err != nil {
		return formatter.Fail("PROJECT_FETCH_ERROR", cli.ExitError, err)
	}

	outcome, err := coord.TransitionSync(ctx, types.ProjectIDFromInt(id), target)
	if err != nil {
		return formatter.FailService(err)
	}

	switch outcome.Kind {
	case board.OutcomeRemoteRejected:
		return formatter.Fail("TRANSITION_REFUSED", cli.ExitValidation, errors.New(outcome.Message))
	case board.OutcomeNetworkFailure:
		return formatter.Fail("NETWORK_ERROR", cli.ExitError, errors.New(outcome.Message))
	}

	project := outcome.Project
	if project == nil {
		return formatter.Fail("INTERNAL_ERROR", cli.ExitError, fmt.Errorf("no record returned for project %d", id))
	}
	if formatter.Quiet {
		fmt.Println(project.Status)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{
			"previous_status": outcome.Previous,
			"project":         api.NewProjectResponse(project),
		})
	}

	fmt.Printf("✓ %s\n", outcome.Message)
	fmt.Printf("  %s → %s\n", styles.Status(outcome.Previous), styles.Status(project.Status))
	return nil
}
