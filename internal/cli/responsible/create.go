package responsible

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/cli"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
)

// CreateCmd returns the responsible create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a person",
		Long: `Add a person who can be assigned to projects. Emails are unique.

Examples:
  quadro responsible create --name="Ana Lima" --email=ana@example.com --role=Engineer
  ANA=$(quadro responsible create --name="Ana Lima" --email=ana@example.com --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Full name (required)")
	cmd.Flags().String("email", "", "Email address (required)")
	for _, name := range []string{"name", "email"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("Error marking flag as required", "error", err)
		}
	}
	cmd.Flags().String("role", "", "Role on the team")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	person, err := cliInstance.App.ResponsibleService.CreateResponsible(ctx, responsibleservice.CreateResponsibleRequest{
		Name:  name,
		Email: email,
		Role:  role,
	})
	if err != nil {
		return formatter.FailService(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", person.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{"responsible": api.NewResponsibleResponse(person)})
	}

	fmt.Printf("✓ %s <%s> added (ID: %d)\n", person.Name, person.Email, person.ID)
	return nil
}
