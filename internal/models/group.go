package models

import "time"

// Group is a collaborative workspace containing columns and tasks.
// Every group has at least one membership (its creator, role owner)
// from the moment it is created.
type Group struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role is the access level a member holds within a group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether the role is one of the known enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// GroupMember relates a user to a group. A (group, user) pair is unique.
type GroupMember struct {
	ID       string
	GroupID  string
	UserID   string
	Role     Role
	JoinedAt time.Time
}
