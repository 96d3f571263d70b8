// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"time"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	ListActiveByAuthors(ctx context.Context, authorIDs []string, now time.Time) ([]models.Story, error)
	ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]models.Story, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStories(ctx, story.UserID)
	return nil
}

// ListActiveByAuthors returns the unexpired stories of the given authors,
// newest first. Expired rows stay in the table; they just fall out of this
// filter.
func (r *storyRepository) ListActiveByAuthors(ctx context.Context, authorIDs []string, now time.Time) ([]models.Story, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var stories []models.Story
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("user_id IN ? AND expires_at > ?", authorIDs, now).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}
