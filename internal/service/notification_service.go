// Package service contains the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// Publisher pushes a payload to a user's real-time channel. Satisfied by
// notifications.Notifier.
type Publisher interface {
	PublishUser(ctx context.Context, userID string, payload string) error
}

// NotificationService persists activity notifications and fans them out to
// connected clients.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        Publisher
}

func NewNotificationService(notificationRepo repository.NotificationRepository, publisher Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Notify records a notification for recipientID and publishes it to their
// real-time channel. Self-directed notifications are silently dropped.
// Publish failures are logged but never fail the calling operation.
func (s *NotificationService) Notify(ctx context.Context, recipientID, senderID string, notifType models.NotificationType, message string) error {
	if recipientID == senderID {
		return nil
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		Message:     message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	observability.NotificationsDelivered.WithLabelValues(string(notifType)).Inc()

	if s.publisher != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			if err := s.publisher.PublishUser(ctx, recipientID, string(payload)); err != nil {
				slog.WarnContext(ctx, "notification publish failed",
					"recipient_id", recipientID,
					"type", string(notifType),
					"error", err)
			}
		}
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, recipientID string, limit, offset int) ([]models.Notification, error) {
	return s.notificationRepo.GetByRecipient(ctx, recipientID, limit, offset)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint, recipientID string) error {
	return s.notificationRepo.MarkRead(ctx, id, recipientID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, recipientID)
}
