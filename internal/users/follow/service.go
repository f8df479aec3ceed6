// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/validate"
)

// Service implements follow and unfollow.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a follow [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, now: time.Now, logger: logger}
}

/*
Follow makes followerID a follower of followeeID.

Description: Idempotent; following twice keeps a single edge.

Returns:
  - error: Validation, Conflict (self-follow), NotFound (unknown account)
*/
func (service *Service) Follow(context context.Context, followerID, followeeID string) error {
	if err := validatePair(followerID, followeeID); err != nil {
		return err
	}

	created, err := service.repo.Insert(context, Edge{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  service.now().UTC(),
	})
	if err != nil {
		return err
	}

	if created {
		service.logger.InfoContext(context, "user_followed",
			slog.String("follower_id", followerID),
			slog.String("followee_id", followeeID),
		)
	}

	return nil
}

/*
Unfollow removes the edge. Removing a missing edge is not an error.
*/
func (service *Service) Unfollow(context context.Context, followerID, followeeID string) error {
	if err := validatePair(followerID, followeeID); err != nil {
		return err
	}

	removed, err := service.repo.Delete(context, followerID, followeeID)
	if err != nil {
		return err
	}

	if removed {
		service.logger.InfoContext(context, "user_unfollowed",
			slog.String("follower_id", followerID),
			slog.String("followee_id", followeeID),
		)
	}

	return nil
}

func validatePair(followerID, followeeID string) error {
	validator := &validate.Validator{}
	if err := validator.UUID("follower_id", followerID).UUID("id", followeeID).Err(); err != nil {
		return err
	}
	if followerID == followeeID {
		return apperr.Conflict("Users cannot follow themselves")
	}
	return nil
}
