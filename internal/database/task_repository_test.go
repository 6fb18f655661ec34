package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"quadro/internal/database"
	"quadro/internal/models"
	"quadro/internal/testutil"
)

func setupTaskFixtures(t *testing.T) (*database.Repository, *models.User, *models.Group, []*models.Column) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)
	columns, err := repo.GetColumnsByGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	return repo, user, group, columns
}

func TestCreateTask(t *testing.T) {
	repo, user, group, columns := setupTaskFixtures(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, &models.Task{
		Title:       "Write release notes",
		Description: "Cover the new board features",
		Priority:    models.PriorityHigh,
		Deadline:    "2026-09-15",
		ColumnID:    columns[0].ID,
		GroupID:     group.ID,
		CreatedBy:   user.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID == "" {
		t.Error("Expected task to have an ID")
	}

	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if got.Title != "Write release notes" {
		t.Errorf("Expected title to round-trip, got %q", got.Title)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("Expected high priority, got %q", got.Priority)
	}
	if got.Deadline != "2026-09-15" {
		t.Errorf("Expected deadline to round-trip, got %q", got.Deadline)
	}
	if got.ColumnID != columns[0].ID {
		t.Errorf("Expected column %q, got %q", columns[0].ID, got.ColumnID)
	}
}

func TestGetTasksByGroupNewestFirst(t *testing.T) {
	repo, user, group, columns := setupTaskFixtures(t)

	first := testutil.CreateTestTask(t, repo, group, columns[0].ID, "First", user)
	second := testutil.CreateTestTask(t, repo, group, columns[1].ID, "Second", user)

	tasks, err := repo.GetTasksByGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GetTasksByGroup failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("Expected newest first, got %q then %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	repo, user, group, columns := setupTaskFixtures(t)
	ctx := context.Background()
	task := testutil.CreateTestTask(t, repo, group, columns[0].ID, "Before", user)

	title := "After"
	priority := models.PriorityLow
	err := repo.UpdateTask(ctx, task.ID, database.TaskUpdates{
		Title:    &title,
		Priority: &priority,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if got.Title != "After" {
		t.Errorf("Expected title 'After', got %q", got.Title)
	}
	if got.Priority != models.PriorityLow {
		t.Errorf("Expected low priority, got %q", got.Priority)
	}
	// Fields not present in the update stay put.
	if got.ColumnID != columns[0].ID {
		t.Errorf("Expected column unchanged, got %q", got.ColumnID)
	}
}

func TestUpdateTaskNoFields(t *testing.T) {
	repo, user, group, columns := setupTaskFixtures(t)
	task := testutil.CreateTestTask(t, repo, group, columns[0].ID, "Untouched", user)

	if err := repo.UpdateTask(context.Background(), task.ID, database.TaskUpdates{}); err != nil {
		t.Fatalf("Expected empty update to be a no-op, got %v", err)
	}
}

func TestMoveTaskToColumn(t *testing.T) {
	repo, user, group, columns := setupTaskFixtures(t)
	ctx := context.Background()
	task := testutil.CreateTestTask(t, repo, group, columns[0].ID, "Mover", user)

	if err := repo.MoveTaskToColumn(ctx, task.ID, columns[2].ID); err != nil {
		t.Fatalf("MoveTaskToColumn failed: %v", err)
	}

	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if got.ColumnID != columns[2].ID {
		t.Errorf("Expected task in column %q, got %q", columns[2].ID, got.ColumnID)
	}
	if got.Title != "Mover" {
		t.Errorf("Expected other fields untouched, got title %q", got.Title)
	}
}

func TestDeleteTask(t *testing.T) {
	repo, user, group, columns := setupTaskFixtures(t)
	ctx := context.Background()
	task := testutil.CreateTestTask(t, repo, group, columns[0].ID, "Short-lived", user)

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := repo.GetTaskByID(ctx, task.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}
