package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendMessage(t *testing.T) {
	app := fiber.New()
	mockMessages := new(MockMessageRepository)
	mockProfiles := new(MockProfileRepository)
	mockNotifications := new(MockNotificationRepository)
	notifier := service.NewNotificationService(mockNotifications, nil)
	s := &Server{
		messageService: service.NewMessageService(mockMessages, mockProfiles, notifier),
	}

	withUser(app, "user_me")
	app.Post("/messages", s.SendMessage)

	t.Run("Success", func(t *testing.T) {
		mockProfiles.On("GetByID", mock.Anything, "user_friend").
			Return(&models.Profile{ID: "user_friend"}, nil).Once()
		mockMessages.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
			return m.SenderID == "user_me" && m.RecipientID == "user_friend" && m.Text == "hello"
		})).Return(nil).Once()
		mockNotifications.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/messages",
			jsonBody(`{"recipient_id":"user_friend","text":"hello"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockMessages.AssertExpectations(t)
	})

	t.Run("Attachment passed through", func(t *testing.T) {
		mockProfiles.On("GetByID", mock.Anything, "user_friend").
			Return(&models.Profile{ID: "user_friend"}, nil).Once()
		mockMessages.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
			return m.SenderID == "user_me" &&
				m.Text == "check this out" &&
				m.AttachmentURL == "https://media.test/messages/sunset.jpg"
		})).Return(nil).Once()
		mockNotifications.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/messages",
			jsonBody(`{"recipient_id":"user_friend","text":"check this out","attachment_url":"https://media.test/messages/sunset.jpg"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got models.Message
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "https://media.test/messages/sunset.jpg", got.AttachmentURL)
		mockMessages.AssertExpectations(t)
	})

	t.Run("Self message rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/messages",
			jsonBody(`{"recipient_id":"user_me","text":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing recipient rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/messages",
			jsonBody(`{"text":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetConversations(t *testing.T) {
	app := fiber.New()
	mockMessages := new(MockMessageRepository)
	mockProfiles := new(MockProfileRepository)
	s := &Server{
		messageService: service.NewMessageService(mockMessages, mockProfiles, nil),
	}

	withUser(app, "user_me")
	app.Get("/conversations", s.GetConversations)

	mockMessages.On("GetAllForUser", mock.Anything, "user_me").
		Return([]models.Message{
			{ID: 2, SenderID: "user_friend", RecipientID: "user_me", Text: "hey"},
			{ID: 1, SenderID: "user_me", RecipientID: "user_friend", Text: "hi"},
		}, nil).Once()
	mockProfiles.On("GetByIDs", mock.Anything, []string{"user_friend"}).
		Return([]models.Profile{{ID: "user_friend", Username: "friend"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Conversations []models.Conversation `json:"conversations"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	if assert.Len(t, body.Conversations, 1) {
		assert.Equal(t, "user_friend", body.Conversations[0].PartnerID)
		assert.Equal(t, 1, body.Conversations[0].UnreadCount)
	}
}

func TestGetConversationsMissingPartnerIsInternalError(t *testing.T) {
	app := fiber.New()
	mockMessages := new(MockMessageRepository)
	mockProfiles := new(MockProfileRepository)
	s := &Server{
		messageService: service.NewMessageService(mockMessages, mockProfiles, nil),
	}

	withUser(app, "user_me")
	app.Get("/conversations", s.GetConversations)

	mockMessages.On("GetAllForUser", mock.Anything, "user_me").
		Return([]models.Message{
			{ID: 1, SenderID: "user_phantom", RecipientID: "user_me", Text: "boo"},
		}, nil).Once()
	mockProfiles.On("GetByIDs", mock.Anything, []string{"user_phantom"}).
		Return([]models.Profile{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMarkConversationRead(t *testing.T) {
	app := fiber.New()
	mockMessages := new(MockMessageRepository)
	s := &Server{
		messageService: service.NewMessageService(mockMessages, nil, nil),
	}

	withUser(app, "user_me")
	app.Post("/conversations/:partnerId/read", s.MarkConversationRead)

	mockMessages.On("MarkConversationRead", mock.Anything, "user_me", "user_friend").
		Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/conversations/user_friend/read", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockMessages.AssertExpectations(t)
}
