package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/quadro/cmd"
	"github.com/thenoetrevino/quadro/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// StatusErrors were already reported by the command
	var statusErr *cli.StatusError
	if !errors.As(err, &statusErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
