package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 100 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidStatus    = errors.New("invalid project status")
	ErrInvalidDates     = errors.New("planned end cannot be before planned start")

	// Business logic errors
	ErrProjectNotFound     = errors.New("project not found")
	ErrResponsibleNotFound = errors.New("responsible not found")
	ErrAlreadyInStatus     = errors.New("project is already in that status")
	ErrTransitionRule      = errors.New("status change not allowed")
	ErrTransitionBlocked   = errors.New("status change blocked")
)
