// Package auth wraps identity management: registration, login, session
// persistence, and auth state change notifications.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quadro/internal/database"
	"quadro/internal/events"
	"quadro/internal/models"
)

// Permissive local@domain.tld shape; real validation is the mail loop's job.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 6

// Repo is the slice of the data layer the auth service needs.
type Repo interface {
	database.UserRepository
	database.ProfileRepository
}

// Service manages the signed-in identity for one session. The current user
// is populated from the persisted session token at startup and kept current
// through Login/Register/Logout.
type Service struct {
	repo        Repo
	publisher   events.Publisher
	secret      []byte
	tokenTTL    time.Duration
	sessionPath string

	mu      sync.RWMutex
	current *models.User
}

// NewService creates an auth service. sessionPath is where the session token
// is persisted between runs; an empty path disables persistence (tests).
func NewService(repo Repo, publisher events.Publisher, secret []byte, tokenTTL time.Duration, sessionPath string) *Service {
	return &Service{
		repo:        repo,
		publisher:   publisher,
		secret:      secret,
		tokenTTL:    tokenTTL,
		sessionPath: sessionPath,
	}
}

// Restore loads the persisted session token, if any, and restores the
// signed-in identity from it. An expired or unreadable token leaves the
// service signed out without error.
func (s *Service) Restore(ctx context.Context) error {
	if s.sessionPath == "" {
		return nil
	}

	data, err := os.ReadFile(s.sessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	userID, err := verifyToken(s.secret, strings.TrimSpace(string(data)))
	if err != nil {
		slog.Info("discarding stale session token", "error", err)
		s.clearSession()
		return nil
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.clearSession()
			return nil
		}
		return fmt.Errorf("failed to load session user: %w", err)
	}

	s.setCurrent(user)
	return nil
}

// CurrentUser returns the signed-in identity, or nil when signed out.
func (s *Service) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login validates the email shape locally before hitting the database,
// verifies the password, persists a fresh session token, and publishes an
// auth change event.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.startSession(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register validates name, email shape and password length locally, creates
// the identity, then writes the profile row best-effort: a profile failure
// is logged but does not roll back the identity. The new user is signed in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, name, string(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.repo.CreateProfile(ctx, user.ID, name, email); err != nil {
		slog.Warn("failed to create profile on registration", "user", user.ID, "error", err)
	}

	if err := s.startSession(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout ends the session and publishes an auth change event.
func (s *Service) Logout() error {
	s.clearSession()
	s.setCurrent(nil)
	return nil
}

func (s *Service) startSession(user *models.User) error {
	if s.sessionPath != "" {
		token, err := createToken(s.secret, user.ID, user.Email, s.tokenTTL)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(s.sessionPath), 0o755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
		if err := os.WriteFile(s.sessionPath, []byte(token), 0o600); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}

	s.setCurrent(user)
	return nil
}

func (s *Service) clearSession() {
	if s.sessionPath == "" {
		return
	}
	if err := os.Remove(s.sessionPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove session file", "error", err)
	}
}

// setCurrent swaps the signed-in identity and notifies subscribers.
func (s *Service) setCurrent(user *models.User) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	if s.publisher == nil {
		return
	}
	event := events.Event{Type: events.EventAuthChanged}
	if user != nil {
		event.UserID = user.ID
	}
	s.publisher.Publish(event)
}

// ValidateEmail reports whether the address has a plausible local@domain.tld
// shape. Exposed for form-level validation in the UI.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// ValidatePassword reports whether the password meets the minimum length.
func ValidatePassword(password string) bool {
	return len(strings.TrimSpace(password)) >= minPasswordLen
}
