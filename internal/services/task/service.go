// Package task implements task business operations.
package task

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

const maxTitleLen = 255

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTasksByGroup(ctx context.Context, groupID string) ([]*models.Task, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) error
	DeleteTask(ctx context.Context, id string) error

	// Task movement (the write path behind drag-and-drop)
	MoveTask(ctx context.Context, taskID, newColumnID string) error
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title       string
	Description string
	Meta        string
	Priority    models.Priority
	Deadline    string
	ColumnID    string
	GroupID     string
	CreatorID   string
	AssignedTo  string
}

// UpdateTaskRequest encapsulates a partial task update.
// Nil fields are left untouched.
type UpdateTaskRequest struct {
	TaskID      string
	Title       *string
	Description *string
	Meta        *string
	Priority    *models.Priority
	Deadline    *string
	AssignedTo  *string
}

// service implements Service interface
type service struct {
	repo      database.TaskRepository
	publisher events.Publisher
}

// NewService creates a new task service
func NewService(repo database.TaskRepository, publisher events.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

// GetTasksByGroup retrieves a group's tasks ordered by creation time
// descending.
func (s *service) GetTasksByGroup(ctx context.Context, groupID string) ([]*models.Task, error) {
	if groupID == "" {
		return nil, ErrInvalidGroupID
	}
	return s.repo.GetTasksByGroup(ctx, groupID)
}

// GetTaskByID retrieves a specific task
func (s *service) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	if id == "" {
		return nil, ErrInvalidTaskID
	}
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// CreateTask validates and inserts a task, stamping the creator identity.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTask(ctx, &models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Meta:        req.Meta,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		ColumnID:    req.ColumnID,
		GroupID:     req.GroupID,
		CreatedBy:   req.CreatorID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publish(created.GroupID)
	return created, nil
}

// UpdateTask applies a partial update.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) error {
	if req.TaskID == "" {
		return ErrInvalidTaskID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		if len(title) > maxTitleLen {
			return ErrTitleTooLong
		}
		req.Title = &title
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return ErrInvalidPriority
	}

	existing, err := s.repo.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	err = s.repo.UpdateTask(ctx, req.TaskID, database.TaskUpdates{
		Title:       req.Title,
		Description: req.Description,
		Meta:        req.Meta,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.publish(existing.GroupID)
	return nil
}

// DeleteTask removes a task.
func (s *service) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidTaskID
	}

	existing, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publish(existing.GroupID)
	return nil
}

// MoveTask updates only the task's column id. Dropping a task on the column
// it already lives in still issues the write; the redundant update is
// harmless and keeps the path simple.
func (s *service) MoveTask(ctx context.Context, taskID, newColumnID string) error {
	if taskID == "" {
		return ErrInvalidTaskID
	}
	if newColumnID == "" {
		return ErrInvalidColumnID
	}

	existing, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.repo.MoveTaskToColumn(ctx, taskID, newColumnID); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	s.publish(existing.GroupID)
	return nil
}

// validateCreateTask validates a CreateTaskRequest
func validateCreateTask(req CreateTaskRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrEmptyTitle
	}
	if len(strings.TrimSpace(req.Title)) > maxTitleLen {
		return ErrTitleTooLong
	}
	if req.ColumnID == "" {
		return ErrInvalidColumnID
	}
	if req.GroupID == "" {
		return ErrInvalidGroupID
	}
	if req.CreatorID == "" {
		return ErrNotAuthenticated
	}
	if !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// publish sends a data change notification (fire-and-forget).
func (s *service) publish(groupID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{Type: events.EventDataChanged, GroupID: groupID})
}
