// Package group implements group and membership business operations.
package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"quadro/internal/database"
	"quadro/internal/events"
	"quadro/internal/models"
)

const maxNameLen = 100

// Service defines all group-related business operations
type Service interface {
	// Read operations
	GetGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	GetMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error)

	// Write operations
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*models.Group, error)
	UpdateGroup(ctx context.Context, id, name, description string) error
	DeleteGroup(ctx context.Context, id string) error
	JoinGroup(ctx context.Context, groupID, userID string) error
	LeaveGroup(ctx context.Context, groupID, userID string) error
}

// CreateGroupRequest encapsulates data for creating a group
type CreateGroupRequest struct {
	Name        string
	Description string
	CreatorID   string
	// Creator profile details for the best-effort profile backfill
	CreatorName  string
	CreatorEmail string
}

// Repo is the slice of the data layer the group service needs.
type Repo interface {
	database.GroupRepository
	database.MemberRepository
	database.ProfileRepository
}

// service implements Service interface
type service struct {
	repo      Repo
	publisher events.Publisher
}

// NewService creates a new group service
func NewService(repo Repo, publisher events.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

// GetGroupsForUser fetches the user's membership rows and resolves them to
// groups ordered by creation time descending. A user with no memberships
// gets an empty list, not an error.
func (s *service) GetGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	ids, err := s.repo.GetGroupIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}
	groups, err := s.repo.GetGroupsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	return groups, nil
}

// GetGroupByID retrieves a specific group
func (s *service) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	if id == "" {
		return nil, ErrInvalidGroupID
	}
	group, err := s.repo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// GetMembers lists the memberships of a group.
func (s *service) GetMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	if groupID == "" {
		return nil, ErrInvalidGroupID
	}
	return s.repo.GetMembersByGroup(ctx, groupID)
}

// CreateGroup creates a group with its owner membership and the three
// default columns in a single transaction. Before that it makes sure a
// profile row exists for the creator; a profile failure is logged, not
// surfaced.
func (s *service) CreateGroup(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	if req.CreatorID == "" {
		return nil, ErrNotAuthenticated
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLen {
		return nil, ErrNameTooLong
	}

	if _, err := s.repo.EnsureProfile(ctx, req.CreatorID, req.CreatorName, req.CreatorEmail); err != nil {
		slog.Warn("failed to ensure creator profile", "user", req.CreatorID, "error", err)
	}

	group, err := s.repo.CreateGroupWithDefaults(ctx, name, strings.TrimSpace(req.Description), req.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.publish(group.ID)
	return group, nil
}

// UpdateGroup writes a group's name and description.
func (s *service) UpdateGroup(ctx context.Context, id, name, description string) error {
	if id == "" {
		return ErrInvalidGroupID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLen {
		return ErrNameTooLong
	}

	if err := s.repo.UpdateGroup(ctx, id, name, strings.TrimSpace(description)); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	s.publish(id)
	return nil
}

// DeleteGroup removes a group; memberships, columns and tasks cascade
// server-side.
func (s *service) DeleteGroup(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidGroupID
	}
	if err := s.repo.DeleteGroup(ctx, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.publish(id)
	return nil
}

// JoinGroup inserts a plain membership for the user.
func (s *service) JoinGroup(ctx context.Context, groupID, userID string) error {
	if groupID == "" {
		return ErrInvalidGroupID
	}
	if userID == "" {
		return ErrNotAuthenticated
	}
	if _, err := s.repo.CreateMember(ctx, groupID, userID, models.RoleMember); err != nil {
		return fmt.Errorf("failed to join group: %w", err)
	}

	s.publish(groupID)
	return nil
}

// LeaveGroup removes the user's membership.
func (s *service) LeaveGroup(ctx context.Context, groupID, userID string) error {
	if groupID == "" {
		return ErrInvalidGroupID
	}
	if userID == "" {
		return ErrNotAuthenticated
	}
	if err := s.repo.DeleteMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}

	s.publish(groupID)
	return nil
}

// publish sends a data change notification (fire-and-forget).
func (s *service) publish(groupID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{Type: events.EventDataChanged, GroupID: groupID})
}
