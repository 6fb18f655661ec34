package group

import "errors"

// Group-related errors
var (
	// Validation errors
	ErrEmptyName      = errors.New("group name cannot be empty")
	ErrNameTooLong    = errors.New("group name cannot exceed 100 characters")
	ErrInvalidGroupID = errors.New("invalid group ID")

	// Business logic errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrGroupNotFound    = errors.New("group not found")
	ErrNotAMember       = errors.New("not a member of this group")
)
