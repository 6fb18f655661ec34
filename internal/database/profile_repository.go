package database

import (
	"context"
	"database/sql"

	"quadro/internal/models"
)

// ProfileRepo handles profile rows. Profiles share their ID with the user
// they belong to.
type ProfileRepo struct {
	db *sql.DB
}

// CreateProfile inserts a profile row for the given user ID.
func (r *ProfileRepo) CreateProfile(ctx context.Context, userID, name, email string) (*models.Profile, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, email) VALUES (?, ?, ?)`,
		userID, name, email,
	)
	if err != nil {
		return nil, err
	}
	return r.GetProfileByID(ctx, userID)
}

// GetProfileByID retrieves a profile by user ID.
func (r *ProfileRepo) GetProfileByID(ctx context.Context, userID string) (*models.Profile, error) {
	profile := &models.Profile{}
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar_url, created_at, updated_at
		 FROM profiles WHERE id = ?`,
		userID,
	).Scan(&profile.ID, &profile.Name, &profile.Email, &avatar,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = NullStringToString(avatar)
	return profile, nil
}

// EnsureProfile creates a profile row for the user if one does not exist yet.
// Returns the existing or newly created profile.
func (r *ProfileRepo) EnsureProfile(ctx context.Context, userID, name, email string) (*models.Profile, error) {
	profile, err := r.GetProfileByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	return r.CreateProfile(ctx, userID, name, email)
}
