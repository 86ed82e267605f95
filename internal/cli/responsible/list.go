package responsible

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/cli"
)

// ListCmd returns the responsible list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List everyone, sorted by name",
		RunE:  runList,
	}

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

	people, err := cliInstance.App.ResponsibleService.GetAllResponsibles(ctx)
	if err != nil {
		return formatter.Fail("RESPONSIBLE_FETCH_ERROR", cli.ExitError, err)
	}

	if formatter.Quiet {
		for _, r := range people {
			fmt.Printf("%d\n", r.ID)
		}
		return nil
	}

	if formatter.JSON {
		out := make([]api.ResponsibleResponse, 0, len(people))
		for _, r := range people {
			out = append(out, api.NewResponsibleResponse(r))
		}
		return formatter.JSONResult(map[string]any{"responsibles": out})
	}

	if len(people) == 0 {
		fmt.Println("No responsibles found")
		return nil
	}

	fmt.Printf("Found %d responsibles:\n\n", len(people))
	for _, r := range people {
		fmt.Printf("  [%d] %s <%s>", r.ID, r.Name, r.Email)
		if r.Role != "" {
			fmt.Printf(" - %s", r.Role)
		}
		fmt.Println()
	}
	return nil
}
