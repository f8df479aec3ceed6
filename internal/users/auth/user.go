// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration and credential login.

Successful authentication yields a short RS256 access token carrying the
user id, username and role; every other package identifies the viewer from
those claims only.
*/
package auth

import (
	"time"

	"github.com/taibuivan/snapduel/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Field names used for validation errors and response payloads.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldNewPassword = "new_password"
)

// Credential constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)
