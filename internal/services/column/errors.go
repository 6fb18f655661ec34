package column

import "errors"

// Column-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("column title cannot be empty")
	ErrTitleTooLong    = errors.New("column title cannot exceed 50 characters")
	ErrInvalidColumnID = errors.New("invalid column ID")
	ErrInvalidGroupID  = errors.New("invalid group ID")
	ErrInvalidOrder    = errors.New("order index must be positive")

	// Business logic errors
	ErrColumnNotFound = errors.New("column not found")
)
