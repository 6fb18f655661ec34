package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrTitleTooLong     = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidColumnID  = errors.New("invalid column ID")
	ErrInvalidGroupID   = errors.New("invalid group ID")
	ErrInvalidPriority  = errors.New("priority must be low, medium or high")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Business logic errors
	ErrTaskNotFound = errors.New("task not found")
)
