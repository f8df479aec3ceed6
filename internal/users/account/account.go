// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles public profiles and self-service profile edits.

# Architecture

  - Entities: Profile (public DTO, never exposes email or credentials).
  - Domain: Accounts are created by the auth package; this package only reads
    and edits the presentation fields, and lets admins ban or unban members.

# Bans

A banned member keeps their profile and can still read, but every write
request is refused by the API's ban guard until an admin lifts the ban.
*/
package account

import (
	"context"
	"time"
)

// # Domain Entities

// Profile is the public view of a member.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	IsBanned       bool      `json:"is_banned"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateProfileInput defines the mutable subset of profile fields.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// Field names used for validation errors.
const (
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"

	MaxDisplayNameLength = 64
)

// # Repository Contracts

// AccountRepository defines the persistence contract for profiles.
type AccountRepository interface {
	/*
		FindProfile retrieves a profile with its follow counters.

		Returns:
		  - *Profile: Loaded profile
		  - error: apperr.NotFound or storage failures
	*/
	FindProfile(context context.Context, id string) (*Profile, error)

	/*
		UpdateProfile writes the presentation fields of an account.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	UpdateProfile(context context.Context, id, displayName, avatarURL string) error

	/*
		SetBanned sets or clears the ban flag of an account.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	SetBanned(context context.Context, id string, banned bool) error

	// IsBanned reports the ban flag. Unknown accounts are not banned.
	IsBanned(context context.Context, id string) (bool, error)
}
