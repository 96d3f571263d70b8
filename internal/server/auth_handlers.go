// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "glimpse-api"
	tokenAudience = "glimpse-client"
	tokenTTL      = time.Hour * 24 * 7

	wsTicketTTL = time.Minute
)

// Signup handles POST /api/auth/signup. Local accounts get a generated
// identity-style ID so they live in the same keyspace as synced profiles.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.profileRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	profile := &models.Profile{
		ID:       generateLocalUserID(),
		Username: req.Username,
		Email:    strings.ToLower(req.Email),
		FullName: req.FullName,
		Password: string(hashedPassword),
	}

	if createErr := s.profileRepo.Create(c.Context(), profile); createErr != nil {
		return mapServiceError(c, createErr)
	}

	token, err := s.generateToken(profile.ID, profile.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  profile,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileRepo.GetByEmail(c.Context(), strings.ToLower(req.Email))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil || profile.IsDeleted || profile.Password == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(profile.ID, profile.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  profile,
	})
}

// Logout handles POST /api/auth/logout by revoking the presented token's jti.
// The blacklist entry lives exactly as long as the token could.
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	if jti != "" && s.redis != nil {
		ttl := tokenTTL
		if exp, ok := c.Locals("tokenExp").(int64); ok {
			if remaining := time.Until(time.Unix(exp, 0)); remaining > 0 {
				ttl = remaining
			}
		}
		if err := s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl).Err(); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// SyncIdentity handles POST /api/auth/sync. It ensures a Profile row exists
// and is current for the authenticated principal, fetching the canonical
// record from the identity provider on first contact.
func (s *Server) SyncIdentity(c *fiber.Ctx) error {
	userID := currentUserID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	profile, err := s.syncService.SyncProfile(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// IssueWSTicket handles POST /api/ws/ticket. Tickets are short-lived,
// single-use credentials for the WebSocket handshake, which cannot carry an
// Authorization header from browsers.
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fmt.Errorf("ticket store unavailable")))
	}

	userID := currentUserID(c)
	ticket := uuid.New().String()
	key := fmt.Sprintf("ws_ticket:%s", ticket)

	if err := s.redis.Set(c.Context(), key, userID, wsTicketTTL).Err(); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,                 // Subject (profile/identity ID)
		"username": username,               // Username (cached in token)
		"iss":      tokenIssuer,            // Issuer
		"aud":      tokenAudience,          // Audience
		"exp":      now.Add(tokenTTL).Unix(), // Expiration (7 days)
		"iat":      now.Unix(),             // Issued at
		"nbf":      now.Unix(),             // Not before
		"jti":      s.generateJTI(),        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// generateLocalUserID mints an ID in the identity provider's format for
// accounts created through local signup.
func generateLocalUserID() string {
	return "user_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}
