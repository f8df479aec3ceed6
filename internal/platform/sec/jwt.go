// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec signs and verifies access tokens and hashes passwords.

Handlers only ever see [AuthClaims]; services receive the viewer as an
explicit optional user id, never the token.
*/
package sec

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/snapduel/pkg/uuid"
)

const (
	// tokenAudience scopes tokens to this API.
	tokenAudience = "snapduel-api"

	// clockLeeway absorbs skew between replicas.
	clockLeeway = 30 * time.Second
)

// AuthClaims is the access token payload. Short JSON names keep the header small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService issues and verifies RS256 access tokens.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	keyID      string
	issuer     string
	now        func() time.Time
}

// NewTokenService loads a PEM key pair from disk.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKey, err := readPEM(privateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, err
	}

	publicKey, err := readPEM(publicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, err
	}

	if !privateKey.PublicKey.Equal(publicKey) {
		return nil, errors.New("sec: public key does not match private key")
	}

	return NewTokenServiceFromKeys(privateKey, publicKey, issuer), nil
}

func readPEM[K any](path string, parse func([]byte) (K, error)) (K, error) {
	var zero K

	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("sec: read key %s: %w", path, err)
	}

	key, err := parse(data)
	if err != nil {
		return zero, fmt.Errorf("sec: parse key %s: %w", path, err)
	}
	return key, nil
}

// NewTokenServiceFromKeys builds a [TokenService] from parsed keys.
func NewTokenServiceFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		keyID:      fingerprint(publicKey),
		issuer:     issuer,
		now:        time.Now,
	}
}

// fingerprint is the first 8 bytes of the SHA-256 of the public key, used
// as the "kid" header so a rotated key is visible in rejected tokens.
func fingerprint(publicKey *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:8])
}

// GenerateAccessToken signs a token for userID valid for timeToLive.
func (service *TokenService) GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error) {
	issuedAt := service.now()

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = service.keyID

	signed, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: sign token: %w", err)
	}
	return signed, nil
}

/*
VerifyToken validates signature, algorithm, issuer, audience and expiry.

Tokens whose subject and uid disagree, or whose role is unknown, are
rejected even when correctly signed.
*/
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return service.publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockLeeway),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	switch {
	case claims.UserID == "" || claims.UserID != claims.Subject:
		return nil, errors.New("sec: token subject mismatch")
	case !UserRole(claims.Role).Valid():
		return nil, fmt.Errorf("sec: token carries unknown role %q", claims.Role)
	}

	return claims, nil
}
