package database_test

import (
	"context"
	"testing"

	"quadro/internal/models"
	"quadro/internal/testutil"
)

func TestCreateColumnAssignsNextOrderIndex(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)

	col, err := repo.CreateColumn(ctx, "Blocked", group.ID)
	if err != nil {
		t.Fatalf("CreateColumn failed: %v", err)
	}
	// Three default columns occupy 1..3.
	if col.OrderIndex != 4 {
		t.Errorf("Expected order index 4, got %d", col.OrderIndex)
	}

	another, err := repo.CreateColumn(ctx, "Review", group.ID)
	if err != nil {
		t.Fatalf("CreateColumn failed: %v", err)
	}
	if another.OrderIndex != 5 {
		t.Errorf("Expected order index 5, got %d", another.OrderIndex)
	}
}

func TestCreateColumnFirstInEmptyGroup(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)

	columns, err := repo.GetColumnsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	for _, col := range columns {
		if err := repo.DeleteColumn(ctx, col.ID); err != nil {
			t.Fatalf("DeleteColumn failed: %v", err)
		}
	}

	col, err := repo.CreateColumn(ctx, "Fresh", group.ID)
	if err != nil {
		t.Fatalf("CreateColumn failed: %v", err)
	}
	if col.OrderIndex != models.FirstOrderIndex {
		t.Errorf("Expected order index %d, got %d", models.FirstOrderIndex, col.OrderIndex)
	}
}

func TestGetColumnsByGroupOrdered(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)

	columns, err := repo.GetColumnsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	for i := 1; i < len(columns); i++ {
		if columns[i-1].OrderIndex > columns[i].OrderIndex {
			t.Errorf("Columns out of order at %d: %d > %d", i, columns[i-1].OrderIndex, columns[i].OrderIndex)
		}
	}
}

func TestUpdateColumn(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)

	columns, err := repo.GetColumnsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	first := columns[0]

	if err := repo.UpdateColumn(ctx, first.ID, "Backlog", 9); err != nil {
		t.Fatalf("UpdateColumn failed: %v", err)
	}

	updated, err := repo.GetColumnByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetColumnByID failed: %v", err)
	}
	if updated.Title != "Backlog" {
		t.Errorf("Expected title 'Backlog', got %q", updated.Title)
	}
	if updated.OrderIndex != 9 {
		t.Errorf("Expected order index 9, got %d", updated.OrderIndex)
	}
}

func TestUpdateColumnTitleKeepsOrder(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)

	columns, err := repo.GetColumnsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	second := columns[1]

	if err := repo.UpdateColumnTitle(ctx, second.ID, "Doing"); err != nil {
		t.Fatalf("UpdateColumnTitle failed: %v", err)
	}

	updated, err := repo.GetColumnByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetColumnByID failed: %v", err)
	}
	if updated.Title != "Doing" {
		t.Errorf("Expected title 'Doing', got %q", updated.Title)
	}
	if updated.OrderIndex != second.OrderIndex {
		t.Errorf("Expected order index unchanged (%d), got %d", second.OrderIndex, updated.OrderIndex)
	}
}

func TestDeleteColumnRemovesTasks(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	group := testutil.CreateTestGroup(t, repo, "Board", user)

	columns, err := repo.GetColumnsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	testutil.CreateTestTask(t, repo, group, columns[0].ID, "Goes with the column", user)

	if err := repo.DeleteColumn(ctx, columns[0].ID); err != nil {
		t.Fatalf("DeleteColumn failed: %v", err)
	}

	tasks, err := repo.GetTasksByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetTasksByGroup failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected tasks cascade-deleted, got %d", len(tasks))
	}
}
