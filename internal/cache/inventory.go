package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix       = "profile:%s"
	PostKeyPrefix          = "post:%d"
	FeedKeyPrefix          = "feed:user:%s"
	ConversationsKeyPrefix = "conversations:user:%s"
	StoriesKeyPrefix       = "stories:feed:%s"
)

const (
	ProfileTTL       = 5 * time.Minute
	PostTTL          = 30 * time.Minute
	FeedTTL          = 1 * time.Minute
	ConversationsTTL = 2 * time.Minute
	StoriesTTL       = 1 * time.Minute
)

func ProfileKey(userID string) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FeedKey(userID string) string {
	return fmt.Sprintf(FeedKeyPrefix, userID)
}

func ConversationsKey(userID string) string {
	return fmt.Sprintf(ConversationsKeyPrefix, userID)
}

func StoriesKey(userID string) string {
	return fmt.Sprintf(StoriesKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID string) {
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateFeed(ctx context.Context, userID string) {
	Invalidate(ctx, FeedKey(userID))
}

func InvalidateConversations(ctx context.Context, userID string) {
	Invalidate(ctx, ConversationsKey(userID))
}

// InvalidateStories drops one viewer's cached story feed. Followers of a
// newly posting author converge within StoriesTTL instead.
func InvalidateStories(ctx context.Context, userID string) {
	Invalidate(ctx, StoriesKey(userID))
}
