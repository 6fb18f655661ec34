// Package database defines repository interfaces for data access
package database

import (
	"context"

	"quadro/internal/models"
)

// DataStore defines the unified interface for all data operations needed by
// the services and the synchronization store. It is composed of smaller,
// domain-specific interfaces so consumers can depend on just the slice they
// use.
type DataStore interface {
	UserRepository
	ProfileRepository
	GroupRepository
	MemberRepository
	ColumnRepository
	TaskRepository
}

// UserRepository covers authentication identity rows.
type UserRepository interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProfileRepository covers public profile rows.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, userID, name, email string) (*models.Profile, error)
	GetProfileByID(ctx context.Context, userID string) (*models.Profile, error)
	EnsureProfile(ctx context.Context, userID, name, email string) (*models.Profile, error)
}

// GroupRepository covers group rows.
type GroupRepository interface {
	CreateGroupWithDefaults(ctx context.Context, name, description, creatorID string) (*models.Group, error)
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	GetGroupsByIDs(ctx context.Context, ids []string) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, id, name, description string) error
	DeleteGroup(ctx context.Context, id string) error
}

// MemberRepository covers group membership rows.
type MemberRepository interface {
	CreateMember(ctx context.Context, groupID, userID string, role models.Role) (*models.GroupMember, error)
	DeleteMember(ctx context.Context, groupID, userID string) error
	GetGroupIDsForUser(ctx context.Context, userID string) ([]string, error)
	GetMembersByGroup(ctx context.Context, groupID string) ([]*models.GroupMember, error)
	GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error)
}

// ColumnRepository covers board columns.
type ColumnRepository interface {
	CreateColumn(ctx context.Context, title, groupID string) (*models.Column, error)
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)
	GetColumnsByGroup(ctx context.Context, groupID string) ([]*models.Column, error)
	UpdateColumnTitle(ctx context.Context, id, title string) error
	UpdateColumn(ctx context.Context, id, title string, orderIndex int) error
	DeleteColumn(ctx context.Context, id string) error
}

// TaskRepository covers task rows.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	GetTasksByGroup(ctx context.Context, groupID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, id string, updates TaskUpdates) error
	MoveTaskToColumn(ctx context.Context, taskID, columnID string) error
	DeleteTask(ctx context.Context, id string) error
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
