package service

import (
	"context"
	"errors"
	"log/slog"

	"glimpse/internal/cache"
	"glimpse/internal/identity"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// SyncService keeps local profiles in step with the upstream identity
// provider, both lazily (on login) and eagerly (via webhooks).
type SyncService struct {
	profileRepo repository.ProfileRepository
	identity    identity.Client
}

func NewSyncService(profileRepo repository.ProfileRepository, identityClient identity.Client) *SyncService {
	return &SyncService{
		profileRepo: profileRepo,
		identity:    identityClient,
	}
}

// SyncProfile ensures a local profile exists for the given identity provider
// user ID and returns it. The operation is idempotent: an existing profile is
// returned untouched, and a concurrent create racing on the unique clerk_id
// index is absorbed by re-reading.
func (s *SyncService) SyncProfile(ctx context.Context, clerkUserID string) (*models.Profile, error) {
	if clerkUserID == "" {
		return nil, models.NewValidationError("User ID is required")
	}

	existing, err := s.profileRepo.GetByClerkID(ctx, clerkUserID)
	if err != nil {
		observability.IdentitySyncTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if existing != nil {
		observability.IdentitySyncTotal.WithLabelValues("hit").Inc()
		return existing, nil
	}

	user, err := s.identity.FetchUser(ctx, clerkUserID)
	if err != nil {
		observability.IdentitySyncTotal.WithLabelValues("error").Inc()
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, models.NewNotFoundError("User", clerkUserID)
		}
		return nil, models.NewInternalError(err)
	}

	profile := profileFromIdentity(user)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// Another request created the same profile first. Treat the
		// unique violation as success and return the winner's row.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			raced, readErr := s.profileRepo.GetByClerkID(ctx, clerkUserID)
			if readErr == nil && raced != nil {
				observability.IdentitySyncTotal.WithLabelValues("race").Inc()
				return raced, nil
			}
		}
		observability.IdentitySyncTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	observability.IdentitySyncTotal.WithLabelValues("created").Inc()
	slog.InfoContext(ctx, "profile created from identity sync",
		"user_id", profile.ID,
		"username", profile.Username)
	return profile, nil
}

// ApplyUserUpsert handles the user.created and user.updated webhook events.
// Missing profiles are created; existing ones get their identity-owned
// fields refreshed. Locally edited fields (bio, website) are left alone.
func (s *SyncService) ApplyUserUpsert(ctx context.Context, user *identity.User) (*models.Profile, error) {
	if user == nil || user.ID == "" {
		return nil, models.NewValidationError("Webhook payload has no user ID")
	}

	existing, err := s.profileRepo.GetByClerkID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		profile := profileFromIdentity(user)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	fields := map[string]any{
		"username":   usernameFor(user),
		"email":      user.PrimaryEmail(),
		"full_name":  user.DisplayName(),
		"avatar_url": user.ImageURL,
		"is_deleted": false,
	}
	if err := s.profileRepo.UpdateFields(ctx, existing.ID, fields); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, existing.ID)
	return s.profileRepo.GetByID(ctx, existing.ID)
}

// ApplyUserDeleted handles the user.deleted webhook event. The profile row
// is kept so existing posts and messages stay attributable, but it is
// flagged deleted and drops out of search and follow listings.
func (s *SyncService) ApplyUserDeleted(ctx context.Context, clerkUserID string) error {
	if clerkUserID == "" {
		return models.NewValidationError("Webhook payload has no user ID")
	}
	if err := s.profileRepo.MarkDeleted(ctx, clerkUserID); err != nil {
		return err
	}
	cache.InvalidateProfile(ctx, clerkUserID)
	return nil
}

func profileFromIdentity(user *identity.User) *models.Profile {
	return &models.Profile{
		ID:        user.ID,
		ClerkID:   user.ID,
		Username:  usernameFor(user),
		Email:     user.PrimaryEmail(),
		FullName:  user.DisplayName(),
		AvatarURL: user.ImageURL,
	}
}

func usernameFor(user *identity.User) string {
	if user.Username != "" {
		return user.Username
	}
	return user.FallbackUsername()
}
