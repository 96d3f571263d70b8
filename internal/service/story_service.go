package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/storage"
)

const storyImageFolder = "stories"

// StoryService handles ephemeral stories. Expiry is purely a read-side
// filter; nothing ever deletes a story row.
type StoryService struct {
	storyRepo  repository.StoryRepository
	followRepo repository.FollowRepository
	uploader   storage.Uploader
	now        func() time.Time
}

type CreateStoryInput struct {
	UserID      string
	ImageURL    string
	File        io.Reader
	Filename    string
	ContentType string
}

func NewStoryService(storyRepo repository.StoryRepository, followRepo repository.FollowRepository, uploader storage.Uploader) *StoryService {
	return &StoryService{
		storyRepo:  storyRepo,
		followRepo: followRepo,
		uploader:   uploader,
		now:        time.Now,
	}
}

// CreateStory stores the image and persists a story that expires StoryTTL
// from now.
func (s *StoryService) CreateStory(ctx context.Context, in CreateStoryInput) (*models.Story, error) {
	imageURL := in.ImageURL
	if in.File != nil {
		if s.uploader == nil {
			return nil, models.NewValidationError("Image uploads are not available")
		}
		uploaded, err := s.uploader.Upload(ctx, storyImageFolder, in.Filename, in.ContentType, in.File)
		if err != nil {
			return nil, models.NewInternalError(fmt.Errorf("upload story image: %w", err))
		}
		imageURL = uploaded
	}
	if imageURL == "" {
		return nil, models.NewValidationError("An image is required")
	}

	story := &models.Story{
		UserID:    in.UserID,
		ImageURL:  imageURL,
		ExpiresAt: s.now().Add(models.StoryTTL),
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// ListActive returns the unexpired stories of the users the viewer follows
// plus their own, grouped per author. Groups are ordered by most recent
// story, matching the feed's follow scope.
func (s *StoryService) ListActive(ctx context.Context, userID string) ([]models.StoryGroup, error) {
	var groups []models.StoryGroup
	err := cache.Aside(ctx, cache.StoriesKey(userID), &groups, cache.StoriesTTL, func() error {
		authorIDs, err := s.followRepo.GetFollowingIDs(ctx, userID)
		if err != nil {
			return err
		}
		authorIDs = append(authorIDs, userID)

		stories, err := s.storyRepo.ListActiveByAuthors(ctx, authorIDs, s.now())
		if err != nil {
			return err
		}
		groups = groupStoriesByAuthor(stories)
		return nil
	})
	return groups, err
}

// groupStoriesByAuthor collapses a newest-first story list into one group
// per author, keeping the authors in order of their most recent story.
func groupStoriesByAuthor(stories []models.Story) []models.StoryGroup {
	index := make(map[string]int, len(stories))
	groups := make([]models.StoryGroup, 0, len(stories))
	for _, story := range stories {
		i, ok := index[story.UserID]
		if !ok {
			i = len(groups)
			index[story.UserID] = i
			groups = append(groups, models.StoryGroup{
				UserID:  story.UserID,
				Profile: story.Profile,
			})
		}
		groups[i].Stories = append(groups[i].Stories, story)
	}
	return groups
}

// ListUserStories returns one user's unexpired stories, newest first.
func (s *StoryService) ListUserStories(ctx context.Context, userID string) ([]models.Story, error) {
	return s.storyRepo.ListActiveByUser(ctx, userID, s.now())
}
