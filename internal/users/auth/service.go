// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/sec"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	tokenTTL       time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		tokenTTL:       constants.AccessTokenTTL,
		now:            time.Now,
		logger:         logger,
	}
}

// Session is the result of a successful registration or login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Access token for the new account
  - error: Validation, Conflict (identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	// ── 1. Validate ──
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength).
		MaxLen(FieldDisplayName, input.DisplayName, MaxUsernameLength*2)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}

	// ── 2. Hash ──
	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.RequiredError(FieldPassword, "Must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Persist ──
	now := service.now().UTC()
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return service.issue(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string `json:"login"` // Username or email
	Password string `json:"password"`
}

/*
Login validates user credentials and issues an access token.

Description: Unknown accounts and wrong passwords produce the same error so
callers cannot enumerate registered identities.

Returns:
  - *Session: Access token and profile
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	user, err := service.userRepository.FindByLogin(context, login)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.WarnContext(context, "login_failed", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if sec.NeedsRehash(user.PasswordHash) {
		service.upgradeHash(context, user, input.Password)
	}

	return service.issue(user)
}

// upgradeHash re-hashes a verified password at the current cost. Failures
// are logged and never block the login.
func (service *Service) upgradeHash(context context.Context, user *User, password string) {
	hashedPassword, err := sec.HashPassword(password)
	if err == nil {
		err = service.userRepository.UpdatePassword(context, user.ID, hashedPassword)
	}
	if err != nil {
		service.logger.WarnContext(context, "password_rehash_failed",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return
	}

	user.PasswordHash = hashedPassword
	service.logger.InfoContext(context, "password_rehashed", slog.String("user_id", user.ID))
}

// Me returns the profile of the authenticated user.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Password Management

// ChangePasswordInput carries the current and replacement passwords.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
ChangePassword replaces the password after verifying the current one.

Returns:
  - error: Unauthorized (wrong current password), Validation or storage errors
*/
func (service *Service) ChangePassword(context context.Context, userID string, input ChangePasswordInput) error {
	validator := &validate.Validator{}
	validator.MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength).
		MaxLen(FieldNewPassword, input.NewPassword, MaxPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(input.NewPassword)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return validate.RequiredError(FieldNewPassword, "Must be at most 72 bytes")
	}
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_changed", slog.String("user_id", userID))
	return nil
}

// issue signs an access token for user.
func (service *Service) issue(user *User) (*Session, error) {
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(service.tokenTTL.Seconds()),
		User:        user,
	}, nil
}
