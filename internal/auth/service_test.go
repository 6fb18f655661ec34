package auth_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"quadro/internal/auth"
	"quadro/internal/events"
	"quadro/internal/testutil"
)

func setupAuth(t *testing.T) *auth.Service {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	sessionPath := filepath.Join(t.TempDir(), "session")
	return auth.NewService(repo, events.NewNotifier(), []byte("test-secret"), time.Hour, sessionPath)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected email to round-trip, got %q", user.Email)
	}
	if svc.CurrentUser() == nil {
		t.Error("Expected registration to sign the user in")
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if svc.CurrentUser() != nil {
		t.Error("Expected logout to clear the current user")
	}

	got, err := svc.Login(ctx, "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected same user, got %q", got.ID)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Login(ctx, "  ALICE@Example.COM ", "hunter22"); err != nil {
		t.Errorf("Expected case/space-insensitive login, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := setupAuth(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever1")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"bad email", "Alice", "not-an-email", "hunter22", auth.ErrInvalidEmail},
		{"missing tld", "Alice", "alice@example", "hunter22", auth.ErrInvalidEmail},
		{"short password", "Alice", "alice@example.com", "five5", auth.ErrPasswordTooShort},
		{"blank name", "   ", "alice@example.com", "hunter22", auth.ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupAuth(t)
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "Other Alice", "alice@example.com", "hunter23"); !errors.Is(err, auth.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestRestoreFromSessionFile(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	sessionPath := filepath.Join(t.TempDir(), "session")
	secret := []byte("test-secret")
	ctx := context.Background()

	first := auth.NewService(repo, events.NewNotifier(), secret, time.Hour, sessionPath)
	user, err := first.Register(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// A fresh service over the same session file picks the identity back up.
	second := auth.NewService(repo, events.NewNotifier(), secret, time.Hour, sessionPath)
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	current := second.CurrentUser()
	if current == nil || current.ID != user.ID {
		t.Errorf("Expected restored session for %q, got %+v", user.ID, current)
	}
}

func TestRestoreExpiredToken(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	sessionPath := filepath.Join(t.TempDir(), "session")
	secret := []byte("test-secret")
	ctx := context.Background()

	first := auth.NewService(repo, events.NewNotifier(), secret, -time.Minute, sessionPath)
	if _, err := first.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	second := auth.NewService(repo, events.NewNotifier(), secret, time.Hour, sessionPath)
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("Expected stale token to be discarded silently, got %v", err)
	}
	if second.CurrentUser() != nil {
		t.Error("Expected no session after expired token")
	}
}

func TestRestoreNoSessionFile(t *testing.T) {
	svc := setupAuth(t)

	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if svc.CurrentUser() != nil {
		t.Error("Expected signed-out state without a session file")
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@sub.example.com", "UPPER@EXAMPLE.COM"}
	invalid := []string{"", "plain", "@example.com", "a@b", "a b@example.com"}

	for _, email := range valid {
		if !auth.ValidateEmail(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if auth.ValidateEmail(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if auth.ValidatePassword("12345") {
		t.Error("Expected 5 characters to be too short")
	}
	if !auth.ValidatePassword("123456") {
		t.Error("Expected 6 characters to pass")
	}
	if auth.ValidatePassword("  1234  ") {
		t.Error("Expected surrounding whitespace to be trimmed before the check")
	}
}
