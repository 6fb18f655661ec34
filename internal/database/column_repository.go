package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"quadro/internal/models"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db *sql.DB
}

// CreateColumn inserts a column at the end of the group's board. The order
// index is assigned inside the INSERT itself (max existing + 1, or 1 for an
// empty board) so two rapid creations cannot race on a client-computed value.
func (r *ColumnRepo) CreateColumn(ctx context.Context, title, groupID string) (*models.Column, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO columns (id, title, group_id, order_index)
		 SELECT ?, ?, ?, COALESCE(MAX(order_index), 0) + 1
		 FROM columns WHERE group_id = ?`,
		id, title, groupID, groupID,
	)
	if err != nil {
		return nil, err
	}
	return r.GetColumnByID(ctx, id)
}

// GetColumnByID retrieves a column by its ID.
func (r *ColumnRepo) GetColumnByID(ctx context.Context, id string) (*models.Column, error) {
	column := &models.Column{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, group_id, order_index, created_at, updated_at
		 FROM columns WHERE id = ?`,
		id,
	).Scan(&column.ID, &column.Title, &column.GroupID, &column.OrderIndex,
		&column.CreatedAt, &column.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return column, nil
}

// GetColumnsByGroup retrieves all columns for a group ordered by order index
// ascending. Ties on order index fall back to insertion order, which keeps
// the sort stable across identical queries.
func (r *ColumnRepo) GetColumnsByGroup(ctx context.Context, groupID string) ([]*models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, group_id, order_index, created_at, updated_at
		 FROM columns
		 WHERE group_id = ?
		 ORDER BY order_index, rowid`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*models.Column
	for rows.Next() {
		column := &models.Column{}
		if err := rows.Scan(&column.ID, &column.Title, &column.GroupID,
			&column.OrderIndex, &column.CreatedAt, &column.UpdatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if columns == nil {
		columns = []*models.Column{}
	}
	return columns, nil
}

// UpdateColumnTitle updates only the title of a column.
func (r *ColumnRepo) UpdateColumnTitle(ctx context.Context, id, title string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE columns SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, id,
	)
	return err
}

// UpdateColumn updates a column's title and order index.
func (r *ColumnRepo) UpdateColumn(ctx context.Context, id, title string, orderIndex int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE columns
		 SET title = ?, order_index = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, orderIndex, id,
	)
	return err
}

// DeleteColumn removes a column. Its tasks cascade.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	return err
}
