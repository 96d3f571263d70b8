// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. Following twice is a no-op.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if targetID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := s.followService.Follow(ctx, currentUserID(c), targetID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// UnfollowUser handles DELETE /api/users/:id/follow. Unfollowing someone
// never followed is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if targetID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := s.followService.Unfollow(ctx, currentUserID(c), targetID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := c.Params("id")

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	followers, err := s.followService.GetFollowers(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"followers": followers})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := c.Params("id")

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	following, err := s.followService.GetFollowing(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}
