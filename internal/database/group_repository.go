package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"quadro/internal/models"
)

// GroupRepo handles all group-related database operations.
type GroupRepo struct {
	db *sql.DB
}

// CreateGroupWithDefaults creates a group, its owner membership, and the
// three default columns in a single transaction. A failure at any step
// rolls back the whole sequence so no orphaned group can be left behind.
func (r *GroupRepo) CreateGroupWithDefaults(ctx context.Context, name, description, creatorID string) (*models.Group, error) {
	groupID := uuid.NewString()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO groups (id, name, description, created_by) VALUES (?, ?, ?, ?)`,
			groupID, name, nullable(description), creatorID,
		); err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (id, group_id, user_id, role) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), groupID, creatorID, string(models.RoleOwner),
		); err != nil {
			return fmt.Errorf("failed to add owner membership: %w", err)
		}

		for i, title := range models.DefaultColumnTitles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO columns (id, title, group_id, order_index) VALUES (?, ?, ?, ?)`,
				uuid.NewString(), title, groupID, models.FirstOrderIndex+i,
			); err != nil {
				return fmt.Errorf("failed to create default column %q: %w", title, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetGroupByID(ctx, groupID)
}

// GetGroupByID retrieves a group by its ID.
func (r *GroupRepo) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_by, created_at, updated_at
		 FROM groups WHERE id = ?`,
		id,
	).Scan(&group.ID, &group.Name, &description, &group.CreatedBy,
		&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	group.Description = NullStringToString(description)
	return group, nil
}

// GetGroupsByIDs retrieves the given groups ordered by creation time
// descending. Unknown IDs are silently skipped.
func (r *GroupRepo) GetGroupsByIDs(ctx context.Context, ids []string) ([]*models.Group, error) {
	if len(ids) == 0 {
		return []*models.Group{}, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, name, description, created_by, created_at, updated_at
		 FROM groups
		 WHERE id IN (%s)
		 ORDER BY created_at DESC, rowid DESC`,
		placeholders(len(ids)),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		var description sql.NullString
		if err := rows.Scan(&group.ID, &group.Name, &description,
			&group.CreatedBy, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, err
		}
		group.Description = NullStringToString(description)
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if groups == nil {
		groups = []*models.Group{}
	}
	return groups, nil
}

// UpdateGroup updates a group's name and description.
func (r *GroupRepo) UpdateGroup(ctx context.Context, id, name, description string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE groups
		 SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, nullable(description), id,
	)
	return err
}

// DeleteGroup removes a group. Memberships, columns and tasks cascade.
func (r *GroupRepo) DeleteGroup(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	return err
}
