package models

import "errors"

// Domain-specific errors for status transitions
var (
	// ErrUnknownStatus indicates a value outside the closed status set
	ErrUnknownStatus = errors.New("unknown status")

	// ErrNoOpTransition indicates a transition whose target equals the current status
	ErrNoOpTransition = errors.New("project is already in the target status")
)
