// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/snapduel/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip issues and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "snapduel.app")

	token, err := service.GenerateAccessToken("user-1", "alice", string(sec.RoleMember), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

/*
TestTokenService_Rejects covers expiry, foreign keys, garbage and unknown roles.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "snapduel.app")

	expired, err := service.GenerateAccessToken("user-1", "alice", "member", -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	other := newTokenService(t, "snapduel.app")
	foreign, err := other.GenerateAccessToken("user-1", "alice", "member", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.Error(t, err)

	unknownRole, err := service.GenerateAccessToken("user-1", "alice", "root", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(unknownRole)
	assert.Error(t, err)
}

/*
TestTokenService_IssuerMismatch rejects tokens signed by the same key for
another issuer.
*/
func TestTokenService_IssuerMismatch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	staging := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "staging.snapduel.app")
	production := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "snapduel.app")

	token, err := staging.GenerateAccessToken("user-1", "alice", "member", time.Minute)
	require.NoError(t, err)

	_, err = production.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("battery staple", hash))
	assert.False(t, sec.NeedsRehash(hash))
}

/*
TestPasswordHash_TooLong rejects input bcrypt would truncate.
*/
func TestPasswordHash_TooLong(t *testing.T) {
	_, err := sec.HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

/*
TestNeedsRehash flags hashes made with another cost.
*/
func TestNeedsRehash(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, sec.NeedsRehash(string(weak)))
	assert.False(t, sec.NeedsRehash("not-a-hash"))
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleModerator))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.RoleMember))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.UserRole("phantom")))
	assert.True(t, sec.RoleAdmin.Valid())
	assert.False(t, sec.UserRole("").Valid())
}
