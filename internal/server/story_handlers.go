// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetActiveStories handles GET /api/stories. The viewer gets the unexpired
// stories of the users they follow plus their own, grouped per author;
// expired rows are filtered, never deleted.
func (s *Server) GetActiveStories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	groups, err := s.storyService.ListActive(ctx, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"stories": groups})
}

// CreateStory handles POST /api/stories (multipart: image)
func (s *Server) CreateStory(c *fiber.Ctx) error {
	in := service.CreateStoryInput{
		UserID:   currentUserID(c),
		ImageURL: c.FormValue("image_url"),
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read image file"))
		}
		defer func() { _ = file.Close() }()
		in.File = file
		in.Filename = fileHeader.Filename
		in.ContentType = fileHeader.Header.Get("Content-Type")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	story, err := s.storyService.CreateStory(ctx, in)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}
