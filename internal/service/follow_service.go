package service

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// FollowService manages follow edges between profiles.
type FollowService struct {
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
	notifier    *NotificationService
}

func NewFollowService(
	followRepo repository.FollowRepository,
	profileRepo repository.ProfileRepository,
	notifier *NotificationService,
) *FollowService {
	return &FollowService{
		followRepo:  followRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// Follow creates a follow edge and notifies the target. Following someone
// twice is a no-op, and only the first follow produces a notification.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return models.NewValidationError("Cannot follow yourself")
	}

	target, err := s.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsDeleted {
		return models.NewNotFoundError("User", targetID)
	}

	already, err := s.followRepo.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if err := s.followRepo.Create(ctx, followerID, targetID); err != nil {
		return err
	}

	if !already && s.notifier != nil {
		return s.notifier.Notify(ctx, targetID, followerID, models.NotificationTypeFollow, "started following you")
	}
	return nil
}

// Unfollow removes a follow edge. Unfollowing someone never followed is a
// no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return models.NewValidationError("Cannot unfollow yourself")
	}
	return s.followRepo.Delete(ctx, followerID, targetID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}

func (s *FollowService) GetFollowers(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.followRepo.GetFollowers(ctx, userID)
}

func (s *FollowService) GetFollowing(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.followRepo.GetFollowing(ctx, userID)
}
