// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts (global browse). Authentication is
// optional; a valid token only enriches posts with the viewer's like state.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	posts, err := s.postService.Explore(ctx, pagination.Limit, pagination.Offset, viewerID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetFeed handles GET /api/posts/feed: posts authored by followed users plus
// the viewer, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	posts, err := s.postService.GetFeed(ctx, service.FeedInput{
		UserID: currentUserID(c),
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// CreatePost handles POST /api/posts (multipart: image, caption, location)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	in := service.CreatePostInput{
		UserID:   currentUserID(c),
		Caption:  c.FormValue("caption"),
		Location: c.FormValue("location"),
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

	post, err := s.postService.CreatePost(ctx, in)
	if err != nil {
		return mapServiceError(c, err)
	}

	s.publishBroadcastEvent(EventPostCreated, map[string]interface{}{
		"post_id": post.ID,
		"user_id": post.UserID,
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	post, err := s.postService.GetPost(ctx, id, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// LikePost handles POST /api/posts/:id/like. Liking twice is a no-op and
// only the first like notifies the post owner.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	post, err := s.postService.LikePost(ctx, currentUserID(c), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	post, err := s.postService.UnlikePost(ctx, currentUserID(c), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	comment, err := s.postService.AddComment(ctx, currentUserID(c), id, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	pagination := parsePagination(c, 50)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	comments, err := s.postService.GetComments(ctx, id, pagination.Limit, pagination.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}
