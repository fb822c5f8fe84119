// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered member with optional profile fields and
// optional TOTP two-factor authentication.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Active       bool      `json:"active"`
	Website      *string   `json:"website,omitempty"`
	PictureURL   *string   `json:"picture_url,omitempty"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA enrollment
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Needs2FA returns true if login must be followed by a TOTP verification step.
func (u *User) Needs2FA() bool {
	return u.TOTPEnabled
}
