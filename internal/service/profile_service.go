package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/storage"
	"glimpse/internal/validation"
)

const avatarFolder = "avatars"

// ProfileService handles profile reads and locally owned profile edits.
// Identity-owned fields (username, email) change through SyncService.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	uploader    storage.Uploader
}

// ProfileView is a profile together with its social counters, as shown on
// a profile page.
type ProfileView struct {
	models.Profile
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

type UpdateProfileInput struct {
	UserID      string
	FullName    *string
	Bio         *string
	Website     *string
	File        io.Reader
	Filename    string
	ContentType string
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	uploader storage.Uploader,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		uploader:    uploader,
	}
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

// GetByUsername returns the profile page view for a username, including
// follower counters and whether the viewer follows them. Deleted profiles
// read as not found.
func (s *ProfileService) GetByUsername(ctx context.Context, username, viewerID string) (*ProfileView, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.IsDeleted {
		return nil, models.NewNotFoundError("Profile", username)
	}

	followers, following, err := s.followRepo.Counts(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		Profile:        *profile,
		FollowerCount:  followers,
		FollowingCount: following,
	}
	if viewerID != "" && viewerID != profile.ID {
		view.IsFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, profile.ID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

// UpdateProfile applies the locally editable fields. Nil pointers mean
// "leave unchanged"; empty strings clear the field.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	fields := map[string]any{}

	if in.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["bio"] = *in.Bio
	}
	if in.Website != nil {
		if err := validation.ValidateWebsite(*in.Website); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["website"] = *in.Website
	}
	if in.File != nil {
		if s.uploader == nil {
			return nil, models.NewValidationError("Image uploads are not available")
		}
		avatarURL, err := s.uploader.Upload(ctx, avatarFolder, in.Filename, in.ContentType, in.File)
		if err != nil {
			return nil, models.NewInternalError(fmt.Errorf("upload avatar: %w", err))
		}
		fields["avatar_url"] = avatarURL
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	if err := s.profileRepo.UpdateFields(ctx, in.UserID, fields); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, in.UserID)
	return s.profileRepo.GetByID(ctx, in.UserID)
}

// Search finds profiles by username or full name substring. The caller's
// own profile is always excluded from the results.
func (s *ProfileService) Search(ctx context.Context, query string, callerID string, limit int) ([]models.Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.profileRepo.Search(ctx, query, callerID, limit)
}
