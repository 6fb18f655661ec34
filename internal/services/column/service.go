// Package column implements board column business operations.
package column

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"quadro/internal/database"
	"quadro/internal/events"
	"quadro/internal/models"
)

const maxTitleLen = 50

// Service defines all column-related business operations
type Service interface {
	// Read operations
	GetColumnsByGroup(ctx context.Context, groupID string) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, title, groupID string) (*models.Column, error)
	UpdateColumn(ctx context.Context, id, title string, orderIndex *int) error
	DeleteColumn(ctx context.Context, id string) error
}

// service implements Service interface
type service struct {
	repo      database.ColumnRepository
	publisher events.Publisher
}

// NewService creates a new column service
func NewService(repo database.ColumnRepository, publisher events.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

// GetColumnsByGroup retrieves all columns for a group ordered by order index.
func (s *service) GetColumnsByGroup(ctx context.Context, groupID string) ([]*models.Column, error) {
	if groupID == "" {
		return nil, ErrInvalidGroupID
	}
	return s.repo.GetColumnsByGroup(ctx, groupID)
}

// GetColumnByID retrieves a specific column
func (s *service) GetColumnByID(ctx context.Context, id string) (*models.Column, error) {
	if id == "" {
		return nil, ErrInvalidColumnID
	}
	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return column, nil
}

// CreateColumn appends a column to the group's board. The next order index
// is assigned by the database (max + 1), never computed from a possibly
// stale client mirror.
func (s *service) CreateColumn(ctx context.Context, title, groupID string) (*models.Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLen {
		return nil, ErrTitleTooLong
	}
	if groupID == "" {
		return nil, ErrInvalidGroupID
	}

	created, err := s.repo.CreateColumn(ctx, title, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	s.publish(groupID)
	return created, nil
}

// UpdateColumn updates a column's title and, when orderIndex is non-nil,
// its order index.
func (s *service) UpdateColumn(ctx context.Context, id, title string, orderIndex *int) error {
	if id == "" {
		return ErrInvalidColumnID
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLen {
		return ErrTitleTooLong
	}
	if orderIndex != nil && *orderIndex <= 0 {
		return ErrInvalidOrder
	}

	// Look up the group before writing so the change event carries it.
	existing, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to get column: %w", err)
	}

	if orderIndex != nil {
		err = s.repo.UpdateColumn(ctx, id, title, *orderIndex)
	} else {
		err = s.repo.UpdateColumnTitle(ctx, id, title)
	}
	if err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}

	s.publish(existing.GroupID)
	return nil
}

// DeleteColumn removes a column; its tasks cascade server-side.
func (s *service) DeleteColumn(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidColumnID
	}

	existing, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to get column: %w", err)
	}

	if err := s.repo.DeleteColumn(ctx, id); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	s.publish(existing.GroupID)
	return nil
}

// publish sends a data change notification (fire-and-forget).
func (s *service) publish(groupID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{Type: events.EventDataChanged, GroupID: groupID})
}
