// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/users/account"
)

const (
	userID  = "0190b1a2-7c3d-7e4f-8a9b-0000000000a1"
	adminID = "0190b1a2-7c3d-7e4f-8a9b-0000000000ad"
)

type memoryAccounts struct {
	profiles map[string]*account.Profile
	updates  int
}

func (repo *memoryAccounts) FindProfile(_ context.Context, id string) (*account.Profile, error) {
	profile, ok := repo.profiles[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *profile
	return &clone, nil
}

func (repo *memoryAccounts) UpdateProfile(_ context.Context, id, displayName, avatarURL string) error {
	profile, ok := repo.profiles[id]
	if !ok {
		return apperr.NotFound("User")
	}
	profile.DisplayName, profile.AvatarURL = displayName, avatarURL
	repo.updates++
	return nil
}

func (repo *memoryAccounts) SetBanned(_ context.Context, id string, banned bool) error {
	profile, ok := repo.profiles[id]
	if !ok {
		return apperr.NotFound("User")
	}
	profile.IsBanned = banned
	return nil
}

func (repo *memoryAccounts) IsBanned(_ context.Context, id string) (bool, error) {
	profile, ok := repo.profiles[id]
	return ok && profile.IsBanned, nil
}

func newService() (*account.Service, *memoryAccounts) {
	repo := &memoryAccounts{profiles: map[string]*account.Profile{
		userID: {ID: userID, Username: "rei", DisplayName: "Rei", FollowerCount: 3},
	}}
	return account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func ptr(s string) *string { return &s }

/*
TestGetProfile validates the id and returns counters.
*/
func TestGetProfile(t *testing.T) {
	service, _ := newService()

	profile, err := service.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.FollowerCount)

	_, err = service.GetProfile(context.Background(), "not-a-uuid")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.GetProfile(context.Background(), "0190b1a2-7c3d-7e4f-8a9b-0000000000ff")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestUpdateProfile applies only provided fields.
*/
func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name        string
		input       account.UpdateProfileInput
		wantName    string
		wantAvatar  string
		wantInvalid bool
	}{
		{"name_only", account.UpdateProfileInput{DisplayName: ptr("  Ayanami ")}, "Ayanami", "", false},
		{"avatar_only", account.UpdateProfileInput{AvatarURL: ptr("https://cdn/a.png")}, "Rei", "https://cdn/a.png", false},
		{"blank_name", account.UpdateProfileInput{DisplayName: ptr("  ")}, "", "", true},
		{"bad_avatar", account.UpdateProfileInput{AvatarURL: ptr("ftp://x")}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService()

			profile, err := service.UpdateProfile(context.Background(), userID, tt.input)
			if tt.wantInvalid {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				assert.Zero(t, repo.updates)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, profile.DisplayName)
			assert.Equal(t, tt.wantAvatar, profile.AvatarURL)
			assert.Equal(t, tt.wantName, repo.profiles[userID].DisplayName)
		})
	}
}

/*
TestSetBanned toggles the flag and refuses self-bans.
*/
func TestSetBanned(t *testing.T) {
	service, repo := newService()

	profile, err := service.SetBanned(context.Background(), adminID, userID, true)
	require.NoError(t, err)
	assert.True(t, profile.IsBanned)

	banned, err := service.IsBanned(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, banned)

	profile, err = service.SetBanned(context.Background(), adminID, userID, false)
	require.NoError(t, err)
	assert.False(t, profile.IsBanned)
	assert.False(t, repo.profiles[userID].IsBanned)
}

/*
TestSetBanned_Rejections covers self-bans, malformed and unknown ids.
*/
func TestSetBanned_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		actor    string
		target   string
		wantCode string
	}{
		{"self_ban", userID, userID, apperr.CodeConflict},
		{"malformed_id", adminID, "abc", apperr.CodeValidation},
		{"unknown_user", adminID, "0190b1a2-7c3d-7e4f-8a9b-0000000000ff", apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService()

			_, err := service.SetBanned(context.Background(), tt.actor, tt.target, true)

			assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
			assert.False(t, repo.profiles[userID].IsBanned)
		})
	}
}
