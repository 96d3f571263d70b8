// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByClerkID(ctx context.Context, clerkID string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	MarkDeleted(ctx context.Context, clerkID string) error
	Search(ctx context.Context, query string, excludeID string, limit int) ([]models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(id)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByClerkID(ctx context.Context, clerkID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Profile already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.ID)
	return nil
}

func (r *profileRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, id)
	return nil
}

// MarkDeleted flags the profile as deleted without removing the row. Posts,
// comments and messages keep their author references.
func (r *profileRepository) MarkDeleted(ctx context.Context, clerkID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("clerk_id = ?", clerkID).
		Update("is_deleted", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Profile", clerkID)
	}
	cache.InvalidateProfile(ctx, clerkID)
	return nil
}

// Search matches profiles by username or full name substring. The excludeID
// row is filtered out so callers never see themselves in their own results.
func (r *profileRepository) Search(ctx context.Context, query string, excludeID string, limit int) ([]models.Profile, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var profiles []models.Profile
	like := "%" + query + "%"
	tx := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Where("username ILIKE ? OR full_name ILIKE ?", like, like)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.
		Order("username ASC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
