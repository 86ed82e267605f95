package use

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/cli"
	"github.com/thenoetrevino/quadro/internal/client"
)

const serverEnv = "QUADRO_SERVER_URL"

// ServerCmd returns the use server subcommand
func ServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server [url]",
		Short: "Set the server the board talks to for the current shell session",
		Long: `Set the board's server using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(quadro use server http://127.0.0.1:8420)  # Use that server
  eval $(quadro use server --clear)                 # Clear server context
  quadro use server --show                          # Show current server

QUADRO_SERVER_URL is set in your current shell session only. The --server
flag on other commands takes precedence over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseServer,
	}

	cmd.Flags().Bool("clear", false, "Clear the current server context")
	cmd.Flags().Bool("show", false, "Show the current server context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")
	cmd.Flags().Bool("no-check", false, "Do not check that the server answers")

	return cmd
}

func runUseServer(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noCheck, _ := cmd.Flags().GetBool("no-check")

	if showFlag {
		return showCurrentServer(cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Would clear %s\n", serverEnv)
			return nil
		}
		fmt.Printf("unset %s\n", serverEnv)
		fmt.Fprintf(os.Stderr, "Cleared server context\n")
		return nil
	}

	if len(args) == 0 {
		return &cli.StatusError{
			Code: cli.ExitUsage,
			Err:  fmt.Errorf("server URL required\nUsage: eval $(quadro use server <url>)"),
		}
	}

	serverURL := args[0]
	if u, err := url.Parse(serverURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &cli.StatusError{Code: cli.ExitValidation, Err: fmt.Errorf("invalid server URL: %s", serverURL)}
	}

	if !noCheck {
		count, err := probe(cmd, serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: server %s did not answer: %v\n", serverURL, err)
			fmt.Fprintf(os.Stderr, "Suggestion: start it with 'quadro serve' or pass --no-check\n")
			return &cli.StatusError{Code: cli.ExitError, Err: err}
		}
		fmt.Fprintf(os.Stderr, "Server has %d projects\n", count)
	}

	if dryRun {
		fmt.Fprintf(os.Stderr, "Would set %s=%s\n", serverEnv, serverURL)
		return nil
	}

	fmt.Printf("export %s=%s\n", serverEnv, serverURL)
	fmt.Fprintf(os.Stderr, "Now using server %s\n", serverURL)
	return nil
}

func probe(cmd *cobra.Command, serverURL string) (int, error) {
	projects, err := client.NewHTTPClient(serverURL, 5*time.Second).FetchAllProjects(cmd.Context())
	if err != nil {
		return 0, err
	}
	return len(projects), nil
}

func showCurrentServer(cmd *cobra.Command) error {
	current := os.Getenv(serverEnv)
	if current == "" {
		fmt.Println("No server context set; the board uses the local database")
		fmt.Println("Use 'eval $(quadro use server <url>)' to set one")
		return nil
	}

	if count, err := probe(cmd, current); err != nil {
		fmt.Printf("Current server: %s (not answering)\n", current)
	} else {
		fmt.Printf("Current server: %s (%d projects)\n", current, count)
	}
	return nil
}
