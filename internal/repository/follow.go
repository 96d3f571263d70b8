// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for social-graph edge operations
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID string) error
	Delete(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	GetFollowers(ctx context.Context, userID string) ([]models.Profile, error)
	GetFollowing(ctx context.Context, userID string) ([]models.Profile, error)
	Counts(ctx context.Context, userID string) (followers int64, following int64, err error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID string) error {
	// ON CONFLICT DO NOTHING makes repeated follows idempotent under races
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, following_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, following_id) DO NOTHING`,
		followerID, followingID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidateFeed(ctx, followerID)
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx, followerID)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Table("profiles").
		Joins("JOIN follows f ON profiles.id = f.follower_id").
		Where("f.following_id = ? AND profiles.is_deleted = false", userID).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Table("profiles").
		Joins("JOIN follows f ON profiles.id = f.following_id").
		Where("f.follower_id = ? AND profiles.is_deleted = false", userID).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *followRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return followers, following, nil
}
