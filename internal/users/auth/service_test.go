// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/sec"
	"github.com/taibuivan/snapduel/internal/users/auth"
)

// # Fakes

type memoryUsers struct {
	users map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*auth.User{}}
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	for _, user := range repo.users {
		if strings.EqualFold(user.Email, login) || strings.EqualFold(user.Username, login) {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) Create(_ context.Context, user *auth.User) error {
	for _, existing := range repo.users {
		if strings.EqualFold(existing.Email, user.Email) || strings.EqualFold(existing.Username, user.Username) {
			return apperr.Conflict("Email or username is already registered")
		}
	}
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

type stubTokens struct {
	err     error
	lastTTL time.Duration
}

func (tokens *stubTokens) GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error) {
	tokens.lastTTL = ttl
	if tokens.err != nil {
		return "", tokens.err
	}
	return "token:" + userID + ":" + role, nil
}

func newService(repo auth.UserRepository, tokens auth.TokenProvider) *auth.Service {
	return auth.NewService(repo, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func register(t *testing.T, service *auth.Service) *auth.Session {
	t.Helper()
	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rei", Email: "Rei@Example.com", Password: "password123",
	})
	require.NoError(t, err)
	return session
}

// # Tests

/*
TestRegister_IssuesMemberToken creates a member and signs a token for it.
*/
func TestRegister_IssuesMemberToken(t *testing.T) {
	repo := newMemoryUsers()
	tokens := &stubTokens{}

	session := register(t, newService(repo, tokens))

	require.NotNil(t, session.User)
	assert.Equal(t, sec.RoleMember, session.User.Role)
	assert.Equal(t, "rei@example.com", session.User.Email)
	assert.Equal(t, "rei", session.User.DisplayName, "display name defaults to username")
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, "token:"+session.User.ID+":member", session.AccessToken)
	assert.Equal(t, int64(tokens.lastTTL.Seconds()), session.ExpiresIn)
	assert.NotEqual(t, "password123", repo.users[session.User.ID].PasswordHash)
}

/*
TestRegister_Validation rejects malformed input before touching storage.
*/
func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"short_username", auth.RegisterInput{Username: "ab", Email: "a@b.co", Password: "password123"}},
		{"bad_username", auth.RegisterInput{Username: "rei ayanami", Email: "a@b.co", Password: "password123"}},
		{"bad_email", auth.RegisterInput{Username: "rei", Email: "nope", Password: "password123"}},
		{"short_password", auth.RegisterInput{Username: "rei", Email: "a@b.co", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryUsers()
			_, err := newService(repo, &stubTokens{}).Register(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
			assert.Empty(t, repo.users)
		})
	}
}

/*
TestRegister_Duplicate surfaces the storage conflict.
*/
func TestRegister_Duplicate(t *testing.T) {
	service := newService(newMemoryUsers(), &stubTokens{})
	register(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "REI", Email: "other@example.com", Password: "password123",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestLogin accepts email or username and hides which part was wrong.
*/
func TestLogin(t *testing.T) {
	service := newService(newMemoryUsers(), &stubTokens{})
	created := register(t, service)

	tests := []struct {
		name     string
		input    auth.LoginInput
		wantCode string
	}{
		{"by_email", auth.LoginInput{Login: "rei@example.com", Password: "password123"}, ""},
		{"by_username", auth.LoginInput{Login: "Rei", Password: "password123"}, ""},
		{"wrong_password", auth.LoginInput{Login: "rei", Password: "password124"}, apperr.CodeUnauthorized},
		{"unknown_user", auth.LoginInput{Login: "asuka", Password: "password123"}, apperr.CodeUnauthorized},
		{"empty", auth.LoginInput{}, apperr.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), tt.input)
			if tt.wantCode != "" {
				assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.User.ID, session.User.ID)
		})
	}
}

/*
TestLogin_TokenFailure wraps signing errors.
*/
func TestLogin_TokenFailure(t *testing.T) {
	repo := newMemoryUsers()
	register(t, newService(repo, &stubTokens{}))

	_, err := newService(repo, &stubTokens{err: errors.New("no key")}).Login(context.Background(), auth.LoginInput{
		Login: "rei", Password: "password123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no key")
}

/*
TestChangePassword requires the current password and updates the hash.
*/
func TestChangePassword(t *testing.T) {
	service := newService(newMemoryUsers(), &stubTokens{})
	userID := register(t, service).User.ID

	err := service.ChangePassword(context.Background(), userID, auth.ChangePasswordInput{
		CurrentPassword: "wrong-password", NewPassword: "newpassword1",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	err = service.ChangePassword(context.Background(), userID, auth.ChangePasswordInput{
		CurrentPassword: "password123", NewPassword: "short",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	require.NoError(t, service.ChangePassword(context.Background(), userID, auth.ChangePasswordInput{
		CurrentPassword: "password123", NewPassword: "newpassword1",
	}))

	_, err = service.Login(context.Background(), auth.LoginInput{Login: "rei", Password: "password123"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	_, err = service.Login(context.Background(), auth.LoginInput{Login: "rei", Password: "newpassword1"})
	assert.NoError(t, err)

	me, err := service.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "rei", me.Username)
}

/*
TestLogin_UpgradesWeakHash re-hashes a password stored at an outdated cost.
*/
func TestLogin_UpgradesWeakHash(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newMemoryUsers()
	repo.users["legacy"] = &auth.User{ID: "legacy", Username: "legacy", Email: "legacy@example.com", PasswordHash: string(weak), Role: sec.RoleMember}

	_, err = newService(repo, &stubTokens{}).Login(context.Background(), auth.LoginInput{Login: "legacy", Password: "password123"})

	require.NoError(t, err)
	assert.False(t, sec.NeedsRehash(repo.users["legacy"].PasswordHash))
	assert.True(t, sec.CheckPasswordHash("password123", repo.users["legacy"].PasswordHash))
}
