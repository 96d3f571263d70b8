package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMarkNotificationRead(t *testing.T) {
	app := fiber.New()
	mockNotifications := new(MockNotificationRepository)
	s := &Server{
		notificationService: service.NewNotificationService(mockNotifications, nil),
	}

	withUser(app, "user_me")
	app.Post("/notifications/:id/read", s.MarkNotificationRead)

	t.Run("Own notification", func(t *testing.T) {
		mockNotifications.On("MarkRead", mock.Anything, uint(5), "user_me").
			Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/notifications/5/read", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Someone else's notification", func(t *testing.T) {
		mockNotifications.On("MarkRead", mock.Anything, uint(6), "user_me").
			Return(models.NewNotFoundError("Notification", 6)).Once()

		req := httptest.NewRequest(http.MethodPost, "/notifications/6/read", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/notifications/abc/read", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetNotifications(t *testing.T) {
	app := fiber.New()
	mockNotifications := new(MockNotificationRepository)
	s := &Server{
		notificationService: service.NewNotificationService(mockNotifications, nil),
	}

	withUser(app, "user_me")
	app.Get("/notifications", s.GetNotifications)

	mockNotifications.On("GetByRecipient", mock.Anything, "user_me", 30, 0).
		Return([]models.Notification{{ID: 1, RecipientID: "user_me", Type: models.NotificationTypeLike}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockNotifications.AssertExpectations(t)
}
