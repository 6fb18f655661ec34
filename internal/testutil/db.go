// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"quadro/internal/database"
	"quadro/internal/models"
)

// SetupTestDB creates a throwaway database with the full schema applied.
// The file lives in t.TempDir() so it is removed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quadro_test.db")
	db, err := database.InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// SetupTestRepo creates a test database and wraps it in a Repository.
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestUser inserts a user and returns it.
func CreateTestUser(t *testing.T, repo *database.Repository, email, name string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), email, name, "x")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestGroup inserts a group (with owner membership and default
// columns) for the given user and returns it.
func CreateTestGroup(t *testing.T, repo *database.Repository, name string, creator *models.User) *models.Group {
	t.Helper()
	group, err := repo.CreateGroupWithDefaults(context.Background(), name, "Test description", creator.ID)
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return group
}

// CreateTestTask inserts a task in the given column and returns it.
func CreateTestTask(t *testing.T, repo *database.Repository, group *models.Group, columnID, title string, creator *models.User) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), &models.Task{
		Title:     title,
		Priority:  models.PriorityMedium,
		ColumnID:  columnID,
		GroupID:   group.ID,
		CreatedBy: creator.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}
