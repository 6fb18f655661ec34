package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"quadro/internal/models"
)

// MemberRepo handles group membership rows.
type MemberRepo struct {
	db *sql.DB
}

// CreateMember inserts a membership row. The UNIQUE(group_id, user_id)
// constraint rejects duplicate joins.
func (r *MemberRepo) CreateMember(ctx context.Context, groupID, userID string, role models.Role) (*models.GroupMember, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO group_members (id, group_id, user_id, role) VALUES (?, ?, ?, ?)`,
		id, groupID, userID, string(role),
	)
	if err != nil {
		return nil, err
	}

	member := &models.GroupMember{}
	var role2 string
	err = r.db.QueryRowContext(ctx,
		`SELECT id, group_id, user_id, role, joined_at FROM group_members WHERE id = ?`,
		id,
	).Scan(&member.ID, &member.GroupID, &member.UserID, &role2, &member.JoinedAt)
	if err != nil {
		return nil, err
	}
	member.Role = models.Role(role2)
	return member, nil
}

// DeleteMember removes a user's membership in a group.
func (r *MemberRepo) DeleteMember(ctx context.Context, groupID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	)
	return err
}

// GetGroupIDsForUser returns the IDs of every group the user belongs to.
func (r *MemberRepo) GetGroupIDsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT group_id FROM group_members WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMembersByGroup returns all memberships for a group, owners first.
func (r *MemberRepo) GetMembersByGroup(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, user_id, role, joined_at
		 FROM group_members
		 WHERE group_id = ?
		 ORDER BY CASE role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 ELSE 2 END, joined_at`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.GroupMember
	for rows.Next() {
		member := &models.GroupMember{}
		var role string
		if err := rows.Scan(&member.ID, &member.GroupID, &member.UserID,
			&role, &member.JoinedAt); err != nil {
			return nil, err
		}
		member.Role = models.Role(role)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// GetMember returns the membership for a (group, user) pair.
func (r *MemberRepo) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member := &models.GroupMember{}
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, group_id, user_id, role, joined_at
		 FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	).Scan(&member.ID, &member.GroupID, &member.UserID, &role, &member.JoinedAt)
	if err != nil {
		return nil, err
	}
	member.Role = models.Role(role)
	return member, nil
}
