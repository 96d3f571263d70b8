package server

import (
	"context"
	"time"

	"glimpse/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a testify mock for repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByClerkID(ctx context.Context, clerkID string) (*models.Profile, error) {
	args := m.Called(ctx, clerkID)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	args := m.Called(ctx, ids)
	if p, ok := args.Get(0).([]models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockProfileRepository) MarkDeleted(ctx context.Context, clerkID string) error {
	args := m.Called(ctx, clerkID)
	return args.Error(0)
}

func (m *MockProfileRepository) Search(ctx context.Context, query string, excludeID string, limit int) ([]models.Profile, error) {
	args := m.Called(ctx, query, excludeID, limit)
	if p, ok := args.Get(0).([]models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPostRepository is a testify mock for repository.PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, currentUserID string) (*models.Post, error) {
	args := m.Called(ctx, id, currentUserID)
	if p, ok := args.Get(0).(*models.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	if p, ok := args.Get(0).([]*models.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	args := m.Called(ctx, authorIDs, limit, offset, currentUserID)
	if p, ok := args.Get(0).([]*models.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int, currentUserID string) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	if p, ok := args.Get(0).([]*models.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID string, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Like(ctx context.Context, userID string, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID string, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

// MockCommentRepository is a testify mock for repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*models.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, limit, offset)
	if c, ok := args.Get(0).([]models.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFollowRepository is a testify mock for repository.FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followingID string) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	args := m.Called(ctx, followerID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFollowRepository) GetFollowers(ctx context.Context, userID string) ([]models.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).([]models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFollowRepository) GetFollowing(ctx context.Context, userID string) ([]models.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).([]models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFollowRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockMessageRepository is a testify mock for repository.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetAllForUser(ctx context.Context, userID string) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	if msgs, ok := args.Get(0).([]models.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) GetBetween(ctx context.Context, userID, partnerID string) ([]models.Message, error) {
	args := m.Called(ctx, userID, partnerID)
	if msgs, ok := args.Get(0).([]models.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, recipientID, senderID string) error {
	args := m.Called(ctx, recipientID, senderID)
	return args.Error(0)
}

func (m *MockMessageRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a testify mock for repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	if n, ok := args.Get(0).([]models.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoryRepository is a testify mock for repository.StoryRepository.
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) Create(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *MockStoryRepository) ListActiveByAuthors(ctx context.Context, authorIDs []string, now time.Time) ([]models.Story, error) {
	args := m.Called(ctx, authorIDs, now)
	if s, ok := args.Get(0).([]models.Story); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryRepository) ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]models.Story, error) {
	args := m.Called(ctx, userID, now)
	if s, ok := args.Get(0).([]models.Story); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
