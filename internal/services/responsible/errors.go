package responsible

import "errors"

// Responsible-related errors
var (
	// Validation errors
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrNameTooLong          = errors.New("name cannot exceed 100 characters")
	ErrEmptyEmail           = errors.New("email cannot be empty")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrRoleTooLong          = errors.New("role cannot exceed 50 characters")
	ErrInvalidResponsibleID = errors.New("invalid responsible ID")

	// Business logic errors
	ErrResponsibleNotFound = errors.New("responsible not found")
	ErrEmailTaken          = errors.New("email is already in use")
)
