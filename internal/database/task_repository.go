package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"quadro/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

// TaskUpdates carries the optional fields of a partial task update.
// Nil fields are left untouched.
type TaskUpdates struct {
	Title       *string
	Description *string
	Meta        *string
	Priority    *models.Priority
	Deadline    *string
	AssignedTo  *string
}

// CreateTask inserts a new task and returns it with timestamps.
func (r *TaskRepo) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks
			(id, title, description, meta, priority, deadline, column_id, group_id, created_by, assigned_to)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, task.Title, nullable(task.Description), nullable(task.Meta),
		string(task.Priority), nullable(task.Deadline),
		task.ColumnID, task.GroupID, task.CreatedBy, nullable(task.AssignedTo),
	)
	if err != nil {
		return nil, err
	}
	return r.GetTaskByID(ctx, id)
}

// GetTaskByID retrieves a task by its ID.
func (r *TaskRepo) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, meta, priority, deadline,
		        column_id, group_id, created_by, assigned_to, created_at, updated_at
		 FROM tasks WHERE id = ?`,
		id,
	)
	return scanTask(row)
}

// GetTasksByGroup retrieves all tasks for a group ordered by creation time
// descending. There is no manual rank within a column.
func (r *TaskRepo) GetTasksByGroup(ctx context.Context, groupID string) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, meta, priority, deadline,
		        column_id, group_id, created_by, assigned_to, created_at, updated_at
		 FROM tasks
		 WHERE group_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []*models.Task{}
	}
	return tasks, nil
}

// UpdateTask applies a partial update to a task.
func (r *TaskRepo) UpdateTask(ctx context.Context, id string, updates TaskUpdates) error {
	query := "UPDATE tasks SET updated_at = CURRENT_TIMESTAMP"
	var args []interface{}

	if updates.Title != nil {
		query += ", title = ?"
		args = append(args, *updates.Title)
	}
	if updates.Description != nil {
		query += ", description = ?"
		args = append(args, nullable(*updates.Description))
	}
	if updates.Meta != nil {
		query += ", meta = ?"
		args = append(args, nullable(*updates.Meta))
	}
	if updates.Priority != nil {
		query += ", priority = ?"
		args = append(args, string(*updates.Priority))
	}
	if updates.Deadline != nil {
		query += ", deadline = ?"
		args = append(args, nullable(*updates.Deadline))
	}
	if updates.AssignedTo != nil {
		query += ", assigned_to = ?"
		args = append(args, nullable(*updates.AssignedTo))
	}

	query += " WHERE id = ?"
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// MoveTaskToColumn changes only the task's column. This is the write path
// behind drag-and-drop.
func (r *TaskRepo) MoveTaskToColumn(ctx context.Context, taskID, columnID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET column_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		columnID, taskID,
	)
	return err
}

// DeleteTask removes a task.
func (r *TaskRepo) DeleteTask(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*models.Task, error) {
	task := &models.Task{}
	var description, meta, deadline, assignedTo sql.NullString
	var priority string
	err := row.Scan(&task.ID, &task.Title, &description, &meta, &priority,
		&deadline, &task.ColumnID, &task.GroupID, &task.CreatedBy,
		&assignedTo, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	task.Description = NullStringToString(description)
	task.Meta = NullStringToString(meta)
	task.Deadline = NullStringToString(deadline)
	task.AssignedTo = NullStringToString(assignedTo)
	task.Priority = models.Priority(priority)
	return task, nil
}
