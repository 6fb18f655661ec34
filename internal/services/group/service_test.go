package group_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quadro/internal/database"
	"quadro/internal/models"
	"quadro/internal/services/group"
	"quadro/internal/testutil"
)

func setupGroupService(t *testing.T) (group.Service, *database.Repository, *models.User) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	user := testutil.CreateTestUser(t, repo, "owner@example.com", "Owner")
	return group.NewService(repo, nil), repo, user
}

func TestCreateGroupValidation(t *testing.T) {
	svc, _, user := setupGroupService(t)
	ctx := context.Background()

	req := group.CreateGroupRequest{Name: "   ", CreatorID: user.ID}
	if _, err := svc.CreateGroup(ctx, req); !errors.Is(err, group.ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}

	req = group.CreateGroupRequest{Name: strings.Repeat("x", 101), CreatorID: user.ID}
	if _, err := svc.CreateGroup(ctx, req); !errors.Is(err, group.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}

	req = group.CreateGroupRequest{Name: "Board"}
	if _, err := svc.CreateGroup(ctx, req); !errors.Is(err, group.ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCreateGroupSeedsBoard(t *testing.T) {
	svc, repo, user := setupGroupService(t)
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, group.CreateGroupRequest{
		Name:         "Board",
		CreatorID:    user.ID,
		CreatorName:  user.Name,
		CreatorEmail: user.Email,
	})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	columns, err := repo.GetColumnsByGroup(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetColumnsByGroup failed: %v", err)
	}
	if len(columns) != len(models.DefaultColumnTitles) {
		t.Errorf("Expected %d default columns, got %d", len(models.DefaultColumnTitles), len(columns))
	}

	member, err := repo.GetMember(ctx, created.ID, user.ID)
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if member.Role != models.RoleOwner {
		t.Errorf("Expected owner role, got %q", member.Role)
	}

	// The best-effort profile backfill should have created a profile row.
	if _, err := repo.GetProfileByID(ctx, user.ID); err != nil {
		t.Errorf("Expected profile ensured during group creation, got %v", err)
	}
}

func TestGetGroupsForUserNoMemberships(t *testing.T) {
	svc, _, user := setupGroupService(t)

	groups, err := svc.GetGroupsForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetGroupsForUser failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
}

func TestGetGroupsForUserNewestFirst(t *testing.T) {
	svc, repo, user := setupGroupService(t)

	testutil.CreateTestGroup(t, repo, "First", user)
	second := testutil.CreateTestGroup(t, repo, "Second", user)

	groups, err := svc.GetGroupsForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetGroupsForUser failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].ID != second.ID {
		t.Errorf("Expected newest group first, got %q", groups[0].Name)
	}
}

func TestJoinGroupTwice(t *testing.T) {
	svc, repo, owner := setupGroupService(t)
	ctx := context.Background()
	created := testutil.CreateTestGroup(t, repo, "Shared", owner)
	joiner := testutil.CreateTestUser(t, repo, "joiner@example.com", "Joiner")

	if err := svc.JoinGroup(ctx, created.ID, joiner.ID); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if err := svc.JoinGroup(ctx, created.ID, joiner.ID); err == nil {
		t.Error("Expected second join to fail on the unique membership constraint")
	}
}

func TestLeaveGroup(t *testing.T) {
	svc, repo, owner := setupGroupService(t)
	ctx := context.Background()
	created := testutil.CreateTestGroup(t, repo, "Shared", owner)
	joiner := testutil.CreateTestUser(t, repo, "joiner@example.com", "Joiner")

	if err := svc.JoinGroup(ctx, created.ID, joiner.ID); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if err := svc.LeaveGroup(ctx, created.ID, joiner.ID); err != nil {
		t.Fatalf("LeaveGroup failed: %v", err)
	}

	groups, err := svc.GetGroupsForUser(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("GetGroupsForUser failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected no memberships after leave, got %d", len(groups))
	}
	// The group itself survives; only the membership is gone.
	if _, err := svc.GetGroupByID(ctx, created.ID); err != nil {
		t.Errorf("Expected group to survive a member leaving, got %v", err)
	}
}

func TestGetGroupByIDUnknown(t *testing.T) {
	svc, _, _ := setupGroupService(t)

	_, err := svc.GetGroupByID(context.Background(), "missing")
	if !errors.Is(err, group.ErrGroupNotFound) {
		t.Errorf("Expected ErrGroupNotFound, got %v", err)
	}
}
