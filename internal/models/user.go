package models

import "time"

// User is an authentication identity. The password hash never leaves the
// auth service.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the public-facing row for a user. It shares its ID with the
// User it belongs to and is created best-effort on registration.
type Profile struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
