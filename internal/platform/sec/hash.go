// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for new hashes. Hashes made with a
// different cost are upgraded on the next successful login (see [NeedsRehash]).
const PasswordCost = 11

// maxPasswordBytes is bcrypt's input limit; longer input is rejected instead
// of being silently truncated.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords over 72 bytes.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// HashPassword hashes password with [PasswordCost].
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether hash was produced with a cost other than
// [PasswordCost]. Unparseable hashes report false; they will fail
// [CheckPasswordHash] anyway.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}
	return cost != PasswordCost
}
