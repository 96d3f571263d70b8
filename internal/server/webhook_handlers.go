// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"glimpse/internal/identity"
	"glimpse/internal/models"
	"glimpse/internal/observability"

	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
)

// identityWebhookEvent is the envelope the identity provider posts.
type identityWebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// IdentityWebhook handles POST /api/webhooks/identity. Every request is
// verified against the shared signing secret before any mutation; requests
// missing the svix headers or failing verification get a 400.
func (s *Server) IdentityWebhook(c *fiber.Ctx) error {
	secret := s.config.ClerkWebhookSecret
	if secret == "" {
		observability.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(errWebhookSecretMissing))
	}

	svixID := c.Get("svix-id")
	svixTimestamp := c.Get("svix-timestamp")
	svixSignature := c.Get("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		observability.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing svix headers"))
	}

	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	headers := http.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	payload := c.Body()
	if err := wh.Verify(payload, headers); err != nil {
		observability.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Webhook verification failed"))
	}

	var event identityWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		observability.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Malformed event payload"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case "user.created", "user.updated":
		var user identity.User
		if err := json.Unmarshal(event.Data, &user); err != nil || user.ID == "" {
			observability.WebhookEventsTotal.WithLabelValues(event.Type, "rejected").Inc()
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Malformed user payload"))
		}
		if _, err := s.syncService.ApplyUserUpsert(ctx, &user); err != nil {
			observability.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
			return mapServiceError(c, err)
		}
		observability.WebhookEventsTotal.WithLabelValues(event.Type, "ok").Inc()

	case "user.deleted":
		var user struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data, &user); err != nil || user.ID == "" {
			observability.WebhookEventsTotal.WithLabelValues(event.Type, "rejected").Inc()
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Malformed user payload"))
		}
		if err := s.syncService.ApplyUserDeleted(ctx, user.ID); err != nil {
			observability.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
			return mapServiceError(c, err)
		}
		observability.WebhookEventsTotal.WithLabelValues(event.Type, "ok").Inc()

	default:
		// Unknown event types are acknowledged so the provider stops retrying.
		slog.InfoContext(ctx, "ignoring unhandled webhook event", "event_type", event.Type)
		observability.WebhookEventsTotal.WithLabelValues(event.Type, "ignored").Inc()
	}

	return c.JSON(fiber.Map{"received": true})
}

var errWebhookSecretMissing = errors.New("webhook signing secret not configured")
