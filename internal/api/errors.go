package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
)

// GenericErrorMessage hides internal failures from clients
const GenericErrorMessage = "An internal server error occurred"

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"path,omitempty"`
}

var (
	notFoundErrors = []error{
		projectservice.ErrProjectNotFound,
		responsibleservice.ErrResponsibleNotFound,
	}
	conflictErrors = []error{
		projectservice.ErrAlreadyInStatus,
		responsibleservice.ErrEmailTaken,
	}
	badRequestErrors = []error{
		projectservice.ErrEmptyName,
		projectservice.ErrNameTooLong,
		projectservice.ErrInvalidProjectID,
		projectservice.ErrInvalidStatus,
		projectservice.ErrInvalidDates,
		projectservice.ErrResponsibleNotFound,
		projectservice.ErrTransitionRule,
		projectservice.ErrTransitionBlocked,
		responsibleservice.ErrEmptyName,
		responsibleservice.ErrNameTooLong,
		responsibleservice.ErrEmptyEmail,
		responsibleservice.ErrInvalidEmail,
		responsibleservice.ErrRoleTooLong,
		responsibleservice.ErrInvalidResponsibleID,
	}
)

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps a service error onto an HTTP status and a short reason
func statusFor(err error) (int, string) {
	switch {
	case matches(err, notFoundErrors):
		return http.StatusNotFound, "Resource not found"
	case matches(err, conflictErrors):
		return http.StatusConflict, "Conflict"
	case matches(err, badRequestErrors):
		return http.StatusBadRequest, "Invalid request"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

// writeError answers with an ErrorResponse. Internal errors are logged and
// replaced by a generic message.
func writeError(c *gin.Context, err error) {
	status, reason := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		message = GenericErrorMessage
	}
	abort(c, status, message, reason)
}

func badRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message, "Invalid request")
}

func abort(c *gin.Context, status int, message, reason string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  status,
		Message: message,
		Error:   reason,
		Path:    c.Request.URL.Path,
	})
}
