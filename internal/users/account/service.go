// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/validate"
)

// # Service Layer

// Service orchestrates profile reads and edits.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{accountRepository: accountRepo, logger: logger}
}

/*
GetProfile retrieves the public profile of a user.

Returns:
  - *Profile: Profile with follow counters
  - error: Validation (malformed id), NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		return nil, err
	}

	return service.accountRepository.FindProfile(context, userID)
}

/*
UpdateProfile applies a partial set of changes to the caller's profile.

Description: Fetches the existing state, overrides provided fields, and
writes the result back.

Returns:
  - *Profile: The updated profile
  - error: Validation or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	profile, err := service.accountRepository.FindProfile(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	validator := &validate.Validator{}
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		validator.Required(FieldDisplayName, name).MaxLen(FieldDisplayName, name, MaxDisplayNameLength)
		profile.DisplayName = name
	}
	if input.AvatarURL != nil {
		avatar := strings.TrimSpace(*input.AvatarURL)
		if avatar != "" {
			validator.HTTPURL(FieldAvatarURL, avatar)
		}
		profile.AvatarURL = avatar
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accountRepository.UpdateProfile(context, userID, profile.DisplayName, profile.AvatarURL); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	return profile, nil
}

// # Bans

/*
SetBanned bans or unbans userID on behalf of actorID. Callers enforce the
admin role; the service only refuses self-bans.

Returns:
  - *Profile: The profile after the change
  - error: Validation, Conflict (self-ban), NotFound or storage failures
*/
func (service *Service) SetBanned(context context.Context, actorID, userID string, banned bool) (*Profile, error) {
	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		return nil, err
	}
	if actorID == userID {
		return nil, apperr.Conflict("You cannot ban yourself")
	}

	if err := service.accountRepository.SetBanned(context, userID, banned); err != nil {
		return nil, err
	}

	action := metrics.ModerationUnban
	if banned {
		action = metrics.ModerationBan
	}
	metrics.ModerationActionsTotal.WithLabelValues(action).Inc()
	service.logger.InfoContext(context, "user_ban_changed",
		slog.String("user_id", userID),
		slog.String("actor_id", actorID),
		slog.Bool("banned", banned),
	)

	return service.accountRepository.FindProfile(context, userID)
}

// IsBanned reports whether userID may not write.
func (service *Service) IsBanned(context context.Context, userID string) (bool, error) {
	return service.accountRepository.IsBanned(context, userID)
}
