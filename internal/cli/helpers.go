package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/seed"
	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
)

// Classify maps a service error onto an error code and exit code
func Classify(err error) (string, int) {
	var validation *seed.ValidationError
	switch {
	case errors.Is(err, projectservice.ErrProjectNotFound),
		errors.Is(err, board.ErrUnknownProject):
		return "PROJECT_NOT_FOUND", ExitNotFound
	case errors.Is(err, responsibleservice.ErrResponsibleNotFound),
		errors.Is(err, projectservice.ErrResponsibleNotFound):
		return "RESPONSIBLE_NOT_FOUND", ExitNotFound
	case errors.Is(err, projectservice.ErrAlreadyInStatus),
		errors.Is(err, models.ErrNoOpTransition),
		errors.Is(err, board.ErrNoOpTransition):
		return "ALREADY_IN_STATUS", ExitValidation
	case errors.Is(err, projectservice.ErrTransitionRule),
		errors.Is(err, projectservice.ErrTransitionBlocked),
		errors.Is(err, board.ErrInvalidTransition):
		return "TRANSITION_REFUSED", ExitValidation
	case errors.Is(err, responsibleservice.ErrEmailTaken):
		return "EMAIL_TAKEN", ExitValidation
	case errors.As(err, &validation):
		return "INVALID_SEED", ExitDataErr
	case errors.Is(err, models.ErrUnknownStatus),
		errors.Is(err, projectservice.ErrEmptyName),
		errors.Is(err, projectservice.ErrNameTooLong),
		errors.Is(err, projectservice.ErrInvalidDates),
		errors.Is(err, projectservice.ErrInvalidProjectID),
		errors.Is(err, projectservice.ErrInvalidStatus),
		errors.Is(err, responsibleservice.ErrInvalidResponsibleID),
		errors.Is(err, responsibleservice.ErrEmptyName),
		errors.Is(err, responsibleservice.ErrNameTooLong),
		errors.Is(err, responsibleservice.ErrEmptyEmail),
		errors.Is(err, responsibleservice.ErrInvalidEmail),
		errors.Is(err, responsibleservice.ErrRoleTooLong):
		return "VALIDATION_ERROR", ExitValidation
	default:
		return "INTERNAL_ERROR", ExitError
	}
}

// GetStatusFlag parses a status flag, accepting forms like "in-progress"
func GetStatusFlag(cmd *cobra.Command, name string) (models.Status, error) {
	raw, _ := cmd.Flags().GetString(name)
	status, err := models.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w %q (must be one of: %s)", err, raw, statusList())
	}
	return status, nil
}

// GetDateFlag parses an optional YYYY-MM-DD flag; unset yields nil
func GetDateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := models.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func statusList() string {
	names := make([]string, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Confirm asks a yes/no question on stdout; anything but y or yes is no
func Confirm(prompt string) bool {
	fmt.Fprintf(os.Stdout, "%s (y/N): ", prompt)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
