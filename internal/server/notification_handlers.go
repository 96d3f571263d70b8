// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	pagination := parsePagination(c, 30)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	notifications, err := s.notificationService.List(ctx, currentUserID(c), pagination.Limit, pagination.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// MarkNotificationRead handles POST /api/notifications/:id/read. Marking a
// notification addressed to someone else is a 404, not a silent success.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := s.notificationService.MarkRead(ctx, id, currentUserID(c)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"read": true})
}

// MarkAllNotificationsRead handles POST /api/notifications/read
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := s.notificationService.MarkAllRead(ctx, currentUserID(c)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"read": true})
}

// GetUnreadNotificationCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadNotificationCount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	count, err := s.notificationService.UnreadCount(ctx, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
