// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetAllForUser(ctx context.Context, userID string) ([]models.Message, error)
	GetBetween(ctx context.Context, userID, partnerID string) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, recipientID, senderID string) error
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConversations(ctx, message.SenderID)
	cache.InvalidateConversations(ctx, message.RecipientID)
	return nil
}

// GetAllForUser returns every message the user sent or received, oldest
// first. Conversation grouping happens in the service layer.
func (r *messageRepository) GetAllForUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) GetBetween(ctx context.Context, userID, partnerID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, partnerID, partnerID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// MarkConversationRead marks every unread message from sender to recipient as read.
func (r *messageRepository) MarkConversationRead(ctx context.Context, recipientID, senderID string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = false", recipientID, senderID).
		Update("read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConversations(ctx, recipientID)
	return nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
