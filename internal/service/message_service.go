package service

import (
	"context"
	"fmt"
	"sort"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/validation"
)

// MessageService handles direct messages and the conversation views
// derived from them. Conversations are never persisted; they are
// recomputed from the message table on every read.
type MessageService struct {
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	notifier    *NotificationService
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	notifier *NotificationService,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// SendMessage persists a message and, only after the write succeeds,
// notifies the recipient. attachmentURL is optional; when set it is
// stored alongside the text.
func (s *MessageService) SendMessage(ctx context.Context, senderID, recipientID, text, attachmentURL string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, models.NewValidationError("Cannot message yourself")
	}
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	recipient, err := s.profileRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient.IsDeleted {
		return nil, models.NewNotFoundError("User", recipientID)
	}

	message := &models.Message{
		SenderID:      senderID,
		RecipientID:   recipientID,
		Text:          text,
		AttachmentURL: attachmentURL,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, recipientID, senderID, models.NotificationTypeMessage, "sent you a message"); err != nil {
			return nil, err
		}
	}
	return message, nil
}

// GetConversations groups all of the user's messages by partner and returns
// one conversation per partner, ordered by most recent message first.
func (s *MessageService) GetConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := cache.Aside(ctx, cache.ConversationsKey(userID), &conversations, cache.ConversationsTTL, func() error {
		var buildErr error
		conversations, buildErr = s.buildConversations(ctx, userID)
		return buildErr
	})
	return conversations, err
}

func (s *MessageService) buildConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	messages, err := s.messageRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPartner := make(map[string][]models.Message)
	var partnerOrder []string
	for _, m := range messages {
		partnerID := m.SenderID
		if partnerID == userID {
			partnerID = m.RecipientID
		}
		if _, seen := byPartner[partnerID]; !seen {
			partnerOrder = append(partnerOrder, partnerID)
		}
		byPartner[partnerID] = append(byPartner[partnerID], m)
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, partnerOrder)
	if err != nil {
		return nil, err
	}
	profileByID := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	conversations := make([]models.Conversation, 0, len(partnerOrder))
	for _, partnerID := range partnerOrder {
		partner, ok := profileByID[partnerID]
		if !ok {
			// A message references a profile that no longer exists. That
			// breaks referential integrity and must surface, not be skipped.
			return nil, models.NewInternalError(fmt.Errorf("conversation partner %s has no profile", partnerID))
		}

		msgs := byPartner[partnerID]
		unread := 0
		for _, m := range msgs {
			if m.RecipientID == userID && !m.Read {
				unread++
			}
		}
		last := msgs[len(msgs)-1]
		conversations = append(conversations, models.Conversation{
			PartnerID:   partnerID,
			Partner:     partner,
			Messages:    msgs,
			LastMessage: &last,
			UnreadCount: unread,
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})
	return conversations, nil
}

// GetConversation returns the full message history with one partner,
// oldest first.
func (s *MessageService) GetConversation(ctx context.Context, userID, partnerID string) ([]models.Message, error) {
	if _, err := s.profileRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetBetween(ctx, userID, partnerID)
}

// MarkConversationRead marks all messages from partnerID to userID as read.
func (s *MessageService) MarkConversationRead(ctx context.Context, userID, partnerID string) error {
	if err := s.messageRepo.MarkConversationRead(ctx, userID, partnerID); err != nil {
		return err
	}
	cache.InvalidateConversations(ctx, userID)
	return nil
}

// UnreadCount returns the number of unread messages across all conversations.
func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, userID)
}
