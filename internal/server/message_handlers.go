// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/conversations. Conversations are derived
// from the message table on every call, never persisted.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	conversations, err := s.messageService.GetConversations(ctx, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

// GetConversationMessages handles GET /api/conversations/:partnerId/messages
func (s *Server) GetConversationMessages(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	if partnerID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid partner ID"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	messages, err := s.messageService.GetConversation(ctx, currentUserID(c), partnerID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		RecipientID   string `json:"recipient_id"`
		Text          string `json:"text"`
		AttachmentURL string `json:"attachment_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RecipientID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Recipient is required"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	message, err := s.messageService.SendMessage(ctx, currentUserID(c), req.RecipientID, req.Text, req.AttachmentURL)
	if err != nil {
		return mapServiceError(c, err)
	}

	// Realtime push only after the write confirmed
	s.publishUserEvent(message.RecipientID, EventMessageReceived, map[string]interface{}{
		"message": message,
	})

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkConversationRead handles POST /api/conversations/:partnerId/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	if partnerID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid partner ID"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := s.messageService.MarkConversationRead(ctx, currentUserID(c), partnerID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"read": true})
}

// Typing handles POST /api/conversations/:partnerId/typing. The indicator
// rides the recipient's realtime channel and is never persisted.
func (s *Server) Typing(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	if partnerID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid partner ID"))
	}

	var req struct {
		IsTyping bool `json:"is_typing"`
	}
	if err := c.BodyParser(&req); err != nil {
		req.IsTyping = true
	}

	userID := currentUserID(c)

	if s.notifier != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		username := ""
		if profile, err := s.profileService.GetByID(ctx, userID); err == nil {
			username = profile.Username
		}
		if err := s.notifier.PublishTyping(ctx, partnerID, userID, username, req.IsTyping); err != nil {
			log.Printf("failed to publish typing indicator: %v", err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUnreadMessageCount handles GET /api/conversations/unread-count
func (s *Server) GetUnreadMessageCount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	count, err := s.messageService.UnreadCount(ctx, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
