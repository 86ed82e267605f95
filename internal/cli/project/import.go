package project

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/cli"
)

// ImportCmd returns the project import subcommand
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import responsibles and projects from a seed file",
		Long: `Import responsibles and projects from a JSON seed file. Use "-" to read stdin.

The file is validated against the seed schema before anything is created.
Responsibles whose email already exists are reused. Import stops at the
first failure and keeps what was created before it.

Example file:
  {
    "responsibles": [{"name": "Ana", "email": "ana@example.com", "role": "Engineer"}],
    "projects": [{"name": "Billing", "responsibles": ["ana@example.com"],
                  "planned_start": "2025-03-01", "planned_end": "2025-04-15"}]
  }
`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cli.AddOutputFlags(cmd, "Minimal output (projects created only)")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	data, err := readInput(cmd, args[0])
	if err != nil {
		return formatter.Fail("READ_ERROR", cli.ExitUsage, fmt.Errorf("failed to read seed file: %w", err))
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

	res, err := cliInstance.App.Importer().Import(ctx, data)
	if err != nil {
		return formatter.FailService(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", res.ProjectsCreated)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONResult(map[string]any{"result": res})
	}

	fmt.Printf("✓ Imported %d projects\n", res.ProjectsCreated)
	fmt.Printf("  Responsibles: %d created, %d reused\n", res.ResponsiblesCreated, res.ResponsiblesReused)
	return nil
}
