package service

import (
	"context"
	"testing"
	"time"

	"glimpse/internal/models"
)

func TestCreateStorySetsExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	var created *models.Story
	repo := noopStoryRepo()
	repo.createFn = func(_ context.Context, s *models.Story) error {
		created = s
		return nil
	}

	svc := NewStoryService(repo, noopFollowRepo(), nil)
	svc.now = func() time.Time { return now }

	_, err := svc.CreateStory(context.Background(), CreateStoryInput{
		UserID:   "user_1",
		ImageURL: "https://cdn.example.com/stories/a.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected story to be created")
	}
	if !created.ExpiresAt.Equal(now.Add(models.StoryTTL)) {
		t.Fatalf("expected expiry 24h out, got %v", created.ExpiresAt)
	}
}

func TestCreateStoryRequiresImage(t *testing.T) {
	svc := NewStoryService(noopStoryRepo(), noopFollowRepo(), nil)
	_, err := svc.CreateStory(context.Background(), CreateStoryInput{UserID: "user_1"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestListActiveUsesCurrentTime(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	var queriedAt time.Time
	repo := noopStoryRepo()
	repo.listActiveByAuthorsFn = func(_ context.Context, _ []string, at time.Time) ([]models.Story, error) {
		queriedAt = at
		return nil, nil
	}

	svc := NewStoryService(repo, noopFollowRepo(), nil)
	svc.now = func() time.Time { return now }

	if _, err := svc.ListActive(context.Background(), "user_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !queriedAt.Equal(now) {
		t.Fatalf("expiry filter should use the current time, got %v", queriedAt)
	}
}

func TestListActiveScopedToFollowSet(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	followRepo := noopFollowRepo()
	followRepo.getFollowingIDsFn = func(context.Context, string) ([]string, error) {
		return []string{"user_2", "user_3"}, nil
	}

	var queriedAuthors []string
	repo := noopStoryRepo()
	repo.listActiveByAuthorsFn = func(_ context.Context, authorIDs []string, _ time.Time) ([]models.Story, error) {
		queriedAuthors = authorIDs
		return []models.Story{
			{ID: 4, UserID: "user_3", CreatedAt: base.Add(3 * time.Minute)},
			{ID: 3, UserID: "user_2", CreatedAt: base.Add(2 * time.Minute)},
			{ID: 2, UserID: "user_3", CreatedAt: base.Add(time.Minute)},
			{ID: 1, UserID: "user_1", CreatedAt: base},
		}, nil
	}

	svc := NewStoryService(repo, followRepo, nil)
	groups, err := svc.ListActive(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"user_2", "user_3", "user_1"}
	if len(queriedAuthors) != len(want) {
		t.Fatalf("expected follow set plus self %v, got %v", want, queriedAuthors)
	}
	for i, id := range want {
		if queriedAuthors[i] != id {
			t.Fatalf("expected follow set plus self %v, got %v", want, queriedAuthors)
		}
	}

	if len(groups) != 3 {
		t.Fatalf("expected one group per author, got %d", len(groups))
	}
	if groups[0].UserID != "user_3" || groups[1].UserID != "user_2" || groups[2].UserID != "user_1" {
		t.Fatalf("groups should be ordered by most recent story, got %v", groups)
	}
	if len(groups[0].Stories) != 2 || groups[0].Stories[0].ID != 4 {
		t.Fatalf("author's stories should stay newest first, got %v", groups[0].Stories)
	}
}
