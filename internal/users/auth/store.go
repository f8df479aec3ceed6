// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// UserRepository persists accounts and their credentials.
//
// Lookups return apperr NotFound for unknown users; Create returns Conflict
// when the username or email is taken.
type UserRepository interface {
	FindByID(context context.Context, id string) (*User, error)

	// FindByLogin matches email or username, case-insensitively.
	FindByLogin(context context.Context, login string) (*User, error)

	Create(context context.Context, user *User) error

	// UpdatePassword swaps the stored hash and bumps updatedat.
	UpdatePassword(context context.Context, userID, newHash string) error
}
