package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*ProfileRepo
	*GroupRepo
	*MemberRepo
	*ColumnRepo
	*TaskRepo
}

// NewRepository creates a new Repository instance wrapping the given
// database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:    &UserRepo{db: db},
		ProfileRepo: &ProfileRepo{db: db},
		GroupRepo:   &GroupRepo{db: db},
		MemberRepo:  &MemberRepo{db: db},
		ColumnRepo:  &ColumnRepo{db: db},
		TaskRepo:    &TaskRepo{db: db},
	}
}
