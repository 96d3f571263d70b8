package service

import (
	"context"
	"io"
	"time"

	"glimpse/internal/identity"
	"glimpse/internal/models"
)

type profileRepoStub struct {
	getByIDFn       func(context.Context, string) (*models.Profile, error)
	getByClerkIDFn  func(context.Context, string) (*models.Profile, error)
	getByEmailFn    func(context.Context, string) (*models.Profile, error)
	getByUsernameFn func(context.Context, string) (*models.Profile, error)
	getByIDsFn      func(context.Context, []string) ([]models.Profile, error)
	createFn        func(context.Context, *models.Profile) error
	updateFn        func(context.Context, *models.Profile) error
	updateFieldsFn  func(context.Context, string, map[string]any) error
	markDeletedFn   func(context.Context, string) error
	searchFn        func(context.Context, string, string, int) ([]models.Profile, error)
}

func (s *profileRepoStub) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByClerkID(ctx context.Context, clerkID string) (*models.Profile, error) {
	return s.getByClerkIDFn(ctx, clerkID)
}
func (s *profileRepoStub) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *profileRepoStub) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *profileRepoStub) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *profileRepoStub) MarkDeleted(ctx context.Context, clerkID string) error {
	return s.markDeletedFn(ctx, clerkID)
}
func (s *profileRepoStub) Search(ctx context.Context, query string, excludeID string, limit int) ([]models.Profile, error) {
	return s.searchFn(ctx, query, excludeID, limit)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn:       func(_ context.Context, id string) (*models.Profile, error) { return &models.Profile{ID: id}, nil },
		getByClerkIDFn:  func(context.Context, string) (*models.Profile, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.Profile, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.Profile, error) { return nil, nil },
		getByIDsFn:      func(context.Context, []string) ([]models.Profile, error) { return nil, nil },
		createFn:        func(context.Context, *models.Profile) error { return nil },
		updateFn:        func(context.Context, *models.Profile) error { return nil },
		updateFieldsFn:  func(context.Context, string, map[string]any) error { return nil },
		markDeletedFn:   func(context.Context, string) error { return nil },
		searchFn:        func(context.Context, string, string, int) ([]models.Profile, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint, string) (*models.Post, error)
	getByUserIDFn   func(context.Context, string, int, int, string) ([]*models.Post, error)
	listByAuthorsFn func(context.Context, []string, int, int, string) ([]*models.Post, error)
	listFn          func(context.Context, int, int, string) ([]*models.Post, error)
	isLikedFn       func(context.Context, string, uint) (bool, error)
	likeFn          func(context.Context, string, uint) error
	unlikeFn        func(context.Context, string, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, currentUserID string) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, authorIDs, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID string, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID string, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID string, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint, _ string) (*models.Post, error) {
			return &models.Post{ID: id, UserID: "user_owner"}, nil
		},
		getByUserIDFn: func(context.Context, string, int, int, string) ([]*models.Post, error) {
			return nil, nil
		},
		listByAuthorsFn: func(context.Context, []string, int, int, string) ([]*models.Post, error) {
			return nil, nil
		},
		listFn:    func(context.Context, int, int, string) ([]*models.Post, error) { return nil, nil },
		isLikedFn: func(context.Context, string, uint) (bool, error) { return false, nil },
		likeFn:    func(context.Context, string, uint) error { return nil },
		unlikeFn:  func(context.Context, string, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	getByPostIDFn   func(context.Context, uint, int, int) ([]models.Comment, error)
	countByPostIDFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostIDFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(context.Context, *models.Comment) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getByPostIDFn:   func(context.Context, uint, int, int) ([]models.Comment, error) { return nil, nil },
		countByPostIDFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type followRepoStub struct {
	createFn          func(context.Context, string, string) error
	deleteFn          func(context.Context, string, string) error
	isFollowingFn     func(context.Context, string, string) (bool, error)
	getFollowingIDsFn func(context.Context, string) ([]string, error)
	getFollowersFn    func(context.Context, string) ([]models.Profile, error)
	getFollowingFn    func(context.Context, string) ([]models.Profile, error)
	countsFn          func(context.Context, string) (int64, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followingID string) error {
	return s.createFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID string) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	return s.getFollowingIDsFn(ctx, followerID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.getFollowersFn(ctx, userID)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.getFollowingFn(ctx, userID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID string) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:          func(context.Context, string, string) error { return nil },
		deleteFn:          func(context.Context, string, string) error { return nil },
		isFollowingFn:     func(context.Context, string, string) (bool, error) { return false, nil },
		getFollowingIDsFn: func(context.Context, string) ([]string, error) { return nil, nil },
		getFollowersFn:    func(context.Context, string) ([]models.Profile, error) { return nil, nil },
		getFollowingFn:    func(context.Context, string) ([]models.Profile, error) { return nil, nil },
		countsFn:          func(context.Context, string) (int64, int64, error) { return 0, 0, nil },
	}
}

type messageRepoStub struct {
	createFn               func(context.Context, *models.Message) error
	getAllForUserFn        func(context.Context, string) ([]models.Message, error)
	getBetweenFn           func(context.Context, string, string) ([]models.Message, error)
	markConversationReadFn func(context.Context, string, string) error
	unreadCountFn          func(context.Context, string) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetAllForUser(ctx context.Context, userID string) ([]models.Message, error) {
	return s.getAllForUserFn(ctx, userID)
}
func (s *messageRepoStub) GetBetween(ctx context.Context, userID, partnerID string) ([]models.Message, error) {
	return s.getBetweenFn(ctx, userID, partnerID)
}
func (s *messageRepoStub) MarkConversationRead(ctx context.Context, recipientID, senderID string) error {
	return s.markConversationReadFn(ctx, recipientID, senderID)
}
func (s *messageRepoStub) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.unreadCountFn(ctx, recipientID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:               func(context.Context, *models.Message) error { return nil },
		getAllForUserFn:        func(context.Context, string) ([]models.Message, error) { return nil, nil },
		getBetweenFn:           func(context.Context, string, string) ([]models.Message, error) { return nil, nil },
		markConversationReadFn: func(context.Context, string, string) error { return nil },
		unreadCountFn:          func(context.Context, string) (int64, error) { return 0, nil },
	}
}

type notificationRepoStub struct {
	createFn         func(context.Context, *models.Notification) error
	getByRecipientFn func(context.Context, string, int, int) ([]models.Notification, error)
	markReadFn       func(context.Context, uint, string) error
	markAllReadFn    func(context.Context, string) error
	unreadCountFn    func(context.Context, string) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) GetByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]models.Notification, error) {
	return s.getByRecipientFn(ctx, recipientID, limit, offset)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id uint, recipientID string) error {
	return s.markReadFn(ctx, id, recipientID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.unreadCountFn(ctx, recipientID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:         func(context.Context, *models.Notification) error { return nil },
		getByRecipientFn: func(context.Context, string, int, int) ([]models.Notification, error) { return nil, nil },
		markReadFn:       func(context.Context, uint, string) error { return nil },
		markAllReadFn:    func(context.Context, string) error { return nil },
		unreadCountFn:    func(context.Context, string) (int64, error) { return 0, nil },
	}
}

type storyRepoStub struct {
	createFn              func(context.Context, *models.Story) error
	listActiveByAuthorsFn func(context.Context, []string, time.Time) ([]models.Story, error)
	listActiveByUserFn    func(context.Context, string, time.Time) ([]models.Story, error)
}

func (s *storyRepoStub) Create(ctx context.Context, story *models.Story) error {
	return s.createFn(ctx, story)
}
func (s *storyRepoStub) ListActiveByAuthors(ctx context.Context, authorIDs []string, now time.Time) ([]models.Story, error) {
	return s.listActiveByAuthorsFn(ctx, authorIDs, now)
}
func (s *storyRepoStub) ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]models.Story, error) {
	return s.listActiveByUserFn(ctx, userID, now)
}

func noopStoryRepo() *storyRepoStub {
	return &storyRepoStub{
		createFn: func(context.Context, *models.Story) error { return nil },
		listActiveByAuthorsFn: func(context.Context, []string, time.Time) ([]models.Story, error) {
			return nil, nil
		},
		listActiveByUserFn: func(context.Context, string, time.Time) ([]models.Story, error) { return nil, nil },
	}
}

type identityClientStub struct {
	fetchUserFn func(context.Context, string) (*identity.User, error)
}

func (s *identityClientStub) FetchUser(ctx context.Context, userID string) (*identity.User, error) {
	return s.fetchUserFn(ctx, userID)
}

type uploaderStub struct {
	uploadFn func(context.Context, string, string, string, io.Reader) (string, error)
}

func (s *uploaderStub) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	return s.uploadFn(ctx, folder, filename, contentType, body)
}

type publisherStub struct {
	publishUserFn func(context.Context, string, string) error
}

func (s *publisherStub) PublishUser(ctx context.Context, userID string, payload string) error {
	return s.publishUserFn(ctx, userID, payload)
}
