package service

import (
	"context"
	"fmt"
	"io"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/storage"
	"glimpse/internal/validation"
)

const postImageFolder = "posts"

// PostService handles post creation, feeds, likes and comments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	uploader    storage.Uploader
	notifier    *NotificationService
}

type CreatePostInput struct {
	UserID      string
	Caption     string
	Location    string
	ImageURL    string
	File        io.Reader
	Filename    string
	ContentType string
}

type FeedInput struct {
	UserID string
	Limit  int
	Offset int
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	uploader storage.Uploader,
	notifier *NotificationService,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		uploader:    uploader,
		notifier:    notifier,
	}
}

// CreatePost stores the image (when uploaded as multipart) and persists the
// post. A pre-uploaded image URL is accepted as an alternative to a file.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateCaption(in.Caption); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	imageURL := in.ImageURL
	if in.File != nil {
		if s.uploader == nil {
			return nil, models.NewValidationError("Image uploads are not available")
		}
		uploaded, err := s.uploader.Upload(ctx, postImageFolder, in.Filename, in.ContentType, in.File)
		if err != nil {
			return nil, models.NewInternalError(fmt.Errorf("upload post image: %w", err))
		}
		imageURL = uploaded
	}
	if imageURL == "" {
		return nil, models.NewValidationError("An image is required")
	}

	post := &models.Post{
		UserID:   in.UserID,
		ImageURL: imageURL,
		Caption:  in.Caption,
		Location: in.Location,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// The author's own feed includes their posts.
	cache.InvalidateFeed(ctx, in.UserID)

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetFeed returns posts from the users the viewer follows plus their own,
// newest first. First pages are served through the cache.
func (s *PostService) GetFeed(ctx context.Context, in FeedInput) ([]*models.Post, error) {
	authorIDs, err := s.followRepo.GetFollowingIDs(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, in.UserID)

	var posts []*models.Post
	if in.Offset == 0 && in.Limit <= 20 {
		err = cache.Aside(ctx, cache.FeedKey(in.UserID), &posts, cache.FeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.ListByAuthors(ctx, authorIDs, in.Limit, in.Offset, in.UserID)
			return fetchErr
		})
		return posts, err
	}
	return s.postRepo.ListByAuthors(ctx, authorIDs, in.Limit, in.Offset, in.UserID)
}

// Explore returns recent posts from all users, newest first.
func (s *PostService) Explore(ctx context.Context, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// LikePost records a like and notifies the post owner. Repeating a like is
// a no-op rather than an error.
func (s *PostService) LikePost(ctx context.Context, userID string, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	alreadyLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)

	if !alreadyLiked && s.notifier != nil {
		if err := s.notifier.Notify(ctx, post.UserID, userID, models.NotificationTypeLike, "liked your post"); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

// UnlikePost removes the viewer's like. Unliking a post that was never
// liked is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, userID string, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)
	return s.postRepo.GetByID(ctx, postID, userID)
}

// AddComment appends a comment to the post and notifies the post owner.
func (s *PostService) AddComment(ctx context.Context, userID string, postID uint, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, post.UserID, userID, models.NotificationTypeComment, "commented on your post"); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (s *PostService) GetComments(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset)
}
