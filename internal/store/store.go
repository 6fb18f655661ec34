// Package store holds the in-memory mirrors of the signed-in user's groups,
// and of the selected group's columns and tasks. Every mutation writes
// through a service and then reloads the affected mirrors, so the mirrors
// converge to database state after each operation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"quadro/internal/auth"
	"quadro/internal/board"
	"quadro/internal/events"
	"quadro/internal/models"
	columnservice "quadro/internal/services/column"
	groupservice "quadro/internal/services/group"
	taskservice "quadro/internal/services/task"
)

// Store owns the mirrors for the lifetime of a signed-in session. They are
// discarded and rebuilt whenever the identity or the selected group changes.
type Store struct {
	auth     *auth.Service
	groups   groupservice.Service
	columns  columnservice.Service
	tasks    taskservice.Service
	notifier *events.Notifier

	mu           sync.RWMutex
	groupsMirror []*models.Group
	columnMirror []*models.Column
	taskMirror   []*models.Task
	currentGroup *models.Group
	loading      bool
}

// New creates a synchronization store wired to the given services.
func New(authSvc *auth.Service, groups groupservice.Service, columns columnservice.Service, tasks taskservice.Service, notifier *events.Notifier) *Store {
	return &Store{
		auth:     authSvc,
		groups:   groups,
		columns:  columns,
		tasks:    tasks,
		notifier: notifier,
	}
}

// Start subscribes to auth state changes and keeps the mirrors in step with
// the identity: sign-in loads the user's groups, sign-out discards
// everything. The goroutine exits when ctx is done.
func (s *Store) Start(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	ch, cancel := s.notifier.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				if event.Type != events.EventAuthChanged {
					continue
				}
				if event.UserID == "" {
					s.reset()
					continue
				}
				if err := s.LoadGroups(ctx); err != nil {
					slog.Error("failed to load groups after sign-in", "error", err)
				}
			}
		}
	}()
}

// Groups returns a snapshot of the groups mirror.
func (s *Store) Groups() []*models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Group(nil), s.groupsMirror...)
}

// Columns returns a snapshot of the selected group's columns.
func (s *Store) Columns() []*models.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Column(nil), s.columnMirror...)
}

// Tasks returns a snapshot of the selected group's tasks.
func (s *Store) Tasks() []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Task(nil), s.taskMirror...)
}

// CurrentGroup returns the selected group, or nil.
func (s *Store) CurrentGroup() *models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentGroup
}

// IsLoading reports whether a group data load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LoadGroups replaces the groups mirror with the current identity's groups,
// newest first. A user with no memberships gets an empty mirror, not an
// error. Signed out, the mirror is cleared.
func (s *Store) LoadGroups(ctx context.Context) error {
	user := s.auth.CurrentUser()
	if user == nil {
		s.reset()
		return nil
	}

	groups, err := s.groups.GetGroupsForUser(ctx, user.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.groupsMirror = groups
	s.mu.Unlock()
	return nil
}

// SelectGroup sets the current group pointer and loads (or clears) the
// column and task mirrors for it.
func (s *Store) SelectGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	s.currentGroup = group
	if group == nil {
		s.columnMirror = nil
		s.taskMirror = nil
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.LoadGroupData(ctx, group.ID)
}

// LoadGroupData replaces the column and task mirrors for the group. Columns
// come ordered by order index, tasks by creation time descending. The two
// fetches form one best-effort snapshot; there is no transactional
// consistency between them.
func (s *Store) LoadGroupData(ctx context.Context, groupID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	columns, err := s.columns.GetColumnsByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load columns: %w", err)
	}
	tasks, err := s.tasks.GetTasksByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	s.mu.Lock()
	s.columnMirror = columns
	s.taskMirror = tasks
	s.mu.Unlock()
	return nil
}

// CreateGroup creates a group (with owner membership and default columns)
// for the signed-in user and reloads the groups mirror.
func (s *Store) CreateGroup(ctx context.Context, name, description string) (*models.Group, error) {
	user := s.auth.CurrentUser()
	if user == nil {
		return nil, groupservice.ErrNotAuthenticated
	}

	created, err := s.groups.CreateGroup(ctx, groupservice.CreateGroupRequest{
		Name:         name,
		Description:  description,
		CreatorID:    user.ID,
		CreatorName:  user.Name,
		CreatorEmail: user.Email,
	})
	if err != nil {
		return nil, err
	}

	if err := s.LoadGroups(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateGroup writes the two fields and reloads the groups mirror. If the
// edited group is the selected one, the current-group pointer is patched in
// place so the header reflects the edit without another fetch.
func (s *Store) UpdateGroup(ctx context.Context, groupID, name, description string) error {
	if err := s.groups.UpdateGroup(ctx, groupID, name, description); err != nil {
		return err
	}

	if err := s.LoadGroups(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if s.currentGroup != nil && s.currentGroup.ID == groupID {
		patched := *s.currentGroup
		patched.Name = name
		patched.Description = description
		s.currentGroup = &patched
	}
	s.mu.Unlock()
	return nil
}

// DeleteGroup removes the group (cascade server-side), clears the selection
// if it was the current group, and reloads the groups mirror.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.groups.DeleteGroup(ctx, groupID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.currentGroup != nil && s.currentGroup.ID == groupID {
		s.currentGroup = nil
		s.columnMirror = nil
		s.taskMirror = nil
	}
	s.mu.Unlock()

	return s.LoadGroups(ctx)
}

// JoinGroup adds the signed-in user as a member and reloads the groups
// mirror.
func (s *Store) JoinGroup(ctx context.Context, groupID string) error {
	user := s.auth.CurrentUser()
	if user == nil {
		return groupservice.ErrNotAuthenticated
	}
	if err := s.groups.JoinGroup(ctx, groupID, user.ID); err != nil {
		return err
	}
	return s.LoadGroups(ctx)
}

// LeaveGroup removes the signed-in user's membership and reloads the groups
// mirror.
func (s *Store) LeaveGroup(ctx context.Context, groupID string) error {
	user := s.auth.CurrentUser()
	if user == nil {
		return groupservice.ErrNotAuthenticated
	}
	if err := s.groups.LeaveGroup(ctx, groupID, user.ID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.currentGroup != nil && s.currentGroup.ID == groupID {
		s.currentGroup = nil
		s.columnMirror = nil
		s.taskMirror = nil
	}
	s.mu.Unlock()

	return s.LoadGroups(ctx)
}

// CreateColumn appends a column to the selected group's board. The order
// index is assigned by the database, then the mirrors are reloaded in the
// same call: one authoritative round trip, no optimistic append.
func (s *Store) CreateColumn(ctx context.Context, title string) error {
	current := s.CurrentGroup()
	if current == nil {
		return columnservice.ErrInvalidGroupID
	}

	if _, err := s.columns.CreateColumn(ctx, title, current.ID); err != nil {
		return err
	}
	return s.LoadGroupData(ctx, current.ID)
}

// UpdateColumn updates a column's title (and order index when non-nil) and
// reloads the mirrors.
func (s *Store) UpdateColumn(ctx context.Context, columnID, title string, orderIndex *int) error {
	if err := s.columns.UpdateColumn(ctx, columnID, title, orderIndex); err != nil {
		return err
	}
	return s.reloadCurrent(ctx)
}

// DeleteColumn removes a column (tasks cascade) and reloads the mirrors.
func (s *Store) DeleteColumn(ctx context.Context, columnID string) error {
	if err := s.columns.DeleteColumn(ctx, columnID); err != nil {
		return err
	}
	return s.reloadCurrent(ctx)
}

// CreateTask inserts a task stamped with the signed-in creator and reloads
// the mirrors.
func (s *Store) CreateTask(ctx context.Context, req taskservice.CreateTaskRequest) error {
	user := s.auth.CurrentUser()
	if user == nil {
		return taskservice.ErrNotAuthenticated
	}
	req.CreatorID = user.ID

	if _, err := s.tasks.CreateTask(ctx, req); err != nil {
		return err
	}
	return s.reloadCurrent(ctx)
}

// UpdateTask applies a partial update and reloads the mirrors.
func (s *Store) UpdateTask(ctx context.Context, req taskservice.UpdateTaskRequest) error {
	if err := s.tasks.UpdateTask(ctx, req); err != nil {
		return err
	}
	return s.reloadCurrent(ctx)
}

// DeleteTask removes a task and reloads the mirrors.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	return s.reloadCurrent(ctx)
}

// MoveTask moves a task to another column (a single column-id update) and
// reloads the mirrors. This is the write path behind a task drop.
func (s *Store) MoveTask(ctx context.Context, taskID, newColumnID string) error {
	if err := s.tasks.MoveTask(ctx, taskID, newColumnID); err != nil {
		return err
	}
	return s.reloadCurrent(ctx)
}

// ReorderColumn moves the dragged column to the target column's position.
// The new order is computed against the local mirror and persisted as N
// individual row updates (one per shifted column), then the mirrors are
// reloaded.
func (s *Store) ReorderColumn(ctx context.Context, draggedID, targetID string) error {
	s.mu.RLock()
	columns := append([]*models.Column(nil), s.columnMirror...)
	s.mu.RUnlock()

	updates := board.ReorderColumns(columns, draggedID, targetID)
	for _, update := range updates {
		idx := update.OrderIndex
		if err := s.columns.UpdateColumn(ctx, update.ColumnID, update.Title, &idx); err != nil {
			return fmt.Errorf("failed to reorder column %s: %w", update.ColumnID, err)
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.reloadCurrent(ctx)
}

// HandleDrop routes a drop to the right mutation based on the payload tag.
// An empty payload is a no-op.
func (s *Store) HandleDrop(ctx context.Context, payload board.DragPayload, targetColumnID string) error {
	if payload.Empty() {
		return nil
	}
	switch payload.Kind {
	case board.DragTask:
		return s.MoveTask(ctx, payload.ID, targetColumnID)
	case board.DragColumn:
		return s.ReorderColumn(ctx, payload.ID, targetColumnID)
	}
	return nil
}

// reloadCurrent refreshes the column and task mirrors for the selected
// group, if any.
func (s *Store) reloadCurrent(ctx context.Context) error {
	current := s.CurrentGroup()
	if current == nil {
		return nil
	}
	return s.LoadGroupData(ctx, current.ID)
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// reset discards every mirror; used on sign-out.
func (s *Store) reset() {
	s.mu.Lock()
	s.groupsMirror = nil
	s.columnMirror = nil
	s.taskMirror = nil
	s.currentGroup = nil
	s.mu.Unlock()
}
