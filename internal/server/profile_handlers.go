// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	profile, err := s.profileService.GetByID(ctx, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me. Accepts JSON or multipart; an
// "avatar" file part replaces the avatar image. Absent fields stay unchanged.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName *string `json:"full_name" form:"full_name"`
		Bio      *string `json:"bio" form:"bio"`
		Website  *string `json:"website" form:"website"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateProfileInput{
		UserID:   currentUserID(c),
		FullName: req.FullName,
		Bio:      req.Bio,
		Website:  req.Website,
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read avatar file"))
		}
		defer func() { _ = file.Close() }()
		in.File = file
		in.Filename = fileHeader.Filename
		in.ContentType = fileHeader.Header.Get("Content-Type")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	profile, err := s.profileService.UpdateProfile(ctx, in)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:username. The response carries
// follower/following counters and whether the viewer follows the profile.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	view, err := s.profileService.GetByUsername(ctx, username, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(view)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 20)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	profiles, err := s.profileService.Search(ctx, query, currentUserID(c), limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": profiles})
}

// GetUserPosts handles GET /api/users/:username/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	pagination := parsePagination(c, 20)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return mapServiceError(c, err)
	}
	if profile == nil || profile.IsDeleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	posts, err := s.postService.GetUserPosts(ctx, profile.ID, pagination.Limit, pagination.Offset, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetUserStories handles GET /api/users/:username/stories (active only)
func (s *Server) GetUserStories(c *fiber.Ctx) error {
	username := c.Params("username")

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return mapServiceError(c, err)
	}
	if profile == nil || profile.IsDeleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	stories, err := s.storyService.ListUserStories(ctx, profile.ID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"stories": stories})
}
