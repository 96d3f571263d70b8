package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"glimpse/internal/models"
)

func TestSendMessageToSelf(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopProfileRepo(), nil)
	_, err := svc.SendMessage(context.Background(), "user_1", "user_1", "hi me", "")
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestSendMessageToDeletedProfile(t *testing.T) {
	profileRepo := noopProfileRepo()
	profileRepo.getByIDFn = func(_ context.Context, id string) (*models.Profile, error) {
		return &models.Profile{ID: id, IsDeleted: true}, nil
	}

	svc := NewMessageService(noopMessageRepo(), profileRepo, nil)
	_, err := svc.SendMessage(context.Background(), "user_1", "user_2", "hello?", "")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestSendMessagePersistsAttachment(t *testing.T) {
	var created *models.Message
	messageRepo := noopMessageRepo()
	messageRepo.createFn = func(_ context.Context, m *models.Message) error {
		created = m
		return nil
	}

	svc := NewMessageService(messageRepo, noopProfileRepo(), nil)
	msg, err := svc.SendMessage(context.Background(), "user_1", "user_2", "look at this",
		"https://media.test/messages/photo.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected message to be persisted")
	}
	if created.AttachmentURL != "https://media.test/messages/photo.jpg" {
		t.Fatalf("attachment URL not persisted, got %q", created.AttachmentURL)
	}
	if msg.AttachmentURL != created.AttachmentURL {
		t.Fatal("returned message should carry the attachment URL")
	}
}

func TestSendMessageNotifiesAfterPersist(t *testing.T) {
	persisted := false
	messageRepo := noopMessageRepo()
	messageRepo.createFn = func(context.Context, *models.Message) error {
		persisted = true
		return nil
	}
	notificationRepo := noopNotificationRepo()
	notificationRepo.createFn = func(context.Context, *models.Notification) error {
		if !persisted {
			t.Fatal("notification created before the message was persisted")
		}
		return nil
	}

	svc := NewMessageService(messageRepo, noopProfileRepo(), NewNotificationService(notificationRepo, nil))
	if _, err := svc.SendMessage(context.Background(), "user_1", "user_2", "hello", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendMessageFailedPersistSkipsNotification(t *testing.T) {
	messageRepo := noopMessageRepo()
	messageRepo.createFn = func(context.Context, *models.Message) error {
		return errors.New("insert failed")
	}
	notificationRepo := noopNotificationRepo()
	notificationRepo.createFn = func(context.Context, *models.Notification) error {
		t.Fatal("no notification should be created when the write fails")
		return nil
	}

	svc := NewMessageService(messageRepo, noopProfileRepo(), NewNotificationService(notificationRepo, nil))
	if _, err := svc.SendMessage(context.Background(), "user_1", "user_2", "hello", ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetConversationsGroupsByPartner(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	messageRepo := noopMessageRepo()
	messageRepo.getAllForUserFn = func(context.Context, string) ([]models.Message, error) {
		return []models.Message{
			{ID: 1, SenderID: "user_1", RecipientID: "user_bob", Text: "hi bob", Read: true, CreatedAt: base},
			{ID: 2, SenderID: "user_carol", RecipientID: "user_1", Text: "hey", Read: false, CreatedAt: base.Add(time.Minute)},
			{ID: 3, SenderID: "user_bob", RecipientID: "user_1", Text: "hi back", Read: false, CreatedAt: base.Add(2 * time.Minute)},
			{ID: 4, SenderID: "user_carol", RecipientID: "user_1", Text: "you there?", Read: false, CreatedAt: base.Add(3 * time.Minute)},
		}, nil
	}
	profileRepo := noopProfileRepo()
	profileRepo.getByIDsFn = func(_ context.Context, ids []string) ([]models.Profile, error) {
		var profiles []models.Profile
		for _, id := range ids {
			profiles = append(profiles, models.Profile{ID: id, Username: id})
		}
		return profiles, nil
	}

	svc := NewMessageService(messageRepo, profileRepo, nil)
	conversations, err := svc.GetConversations(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}

	// Most recent activity first: carol's message at +3m beats bob's at +2m.
	if conversations[0].PartnerID != "user_carol" || conversations[1].PartnerID != "user_bob" {
		t.Fatalf("unexpected ordering: %s, %s", conversations[0].PartnerID, conversations[1].PartnerID)
	}
	if conversations[0].UnreadCount != 2 {
		t.Fatalf("expected 2 unread from carol, got %d", conversations[0].UnreadCount)
	}
	if conversations[1].UnreadCount != 1 {
		t.Fatalf("expected 1 unread from bob, got %d", conversations[1].UnreadCount)
	}
	if conversations[0].LastMessage == nil || conversations[0].LastMessage.Text != "you there?" {
		t.Fatalf("unexpected last message: %#v", conversations[0].LastMessage)
	}
	if len(conversations[1].Messages) != 2 {
		t.Fatalf("expected bob conversation to hold 2 messages, got %d", len(conversations[1].Messages))
	}
}

func TestGetConversationsMissingPartnerProfile(t *testing.T) {
	messageRepo := noopMessageRepo()
	messageRepo.getAllForUserFn = func(context.Context, string) ([]models.Message, error) {
		return []models.Message{
			{ID: 1, SenderID: "user_ghost", RecipientID: "user_1", Text: "boo"},
		}, nil
	}
	profileRepo := noopProfileRepo()
	profileRepo.getByIDsFn = func(context.Context, []string) ([]models.Profile, error) {
		return nil, nil
	}

	svc := NewMessageService(messageRepo, profileRepo, nil)
	_, err := svc.GetConversations(context.Background(), "user_1")
	if err == nil {
		t.Fatal("expected hard error for missing partner profile")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected internal app error, got %#v", err)
	}
}

func TestGetConversationsEmpty(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopProfileRepo(), nil)
	conversations, err := svc.GetConversations(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conversations) != 0 {
		t.Fatalf("expected no conversations, got %d", len(conversations))
	}
}
