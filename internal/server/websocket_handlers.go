// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"glimpse/internal/middleware"
)

// WebsocketHandler returns a websocket handler that registers connections with the Hub.
// Authentication is handled by route middleware and userID is read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userID, ok := conn.Locals("userID").(string)
		if !ok || userID == "" {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %s: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.hub.UnregisterClient(client)

		// The ticket's job is done once the session is established.
		s.consumeWSTicket(context.Background(), conn.Locals("wsTicket"))

		// Presence
		s.publishPresence(userID, "online")
		s.sendFollowingOnlineSnapshot(conn, userID)

		// Start pumps
		go client.WritePump()
		client.ReadPump()

		// After ReadPump returns, client is disconnected
		if !s.hub.IsOnline(userID) {
			s.publishPresence(userID, "offline")
		}
	})
}

func (s *Server) publishPresence(userID, status string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishPresence(context.Background(), userID, status); err != nil {
		log.Printf("failed to publish presence for user %s: %v", userID, err)
	}
}

// sendFollowingOnlineSnapshot tells a freshly connected client which of the
// accounts they follow are currently online.
func (s *Server) sendFollowingOnlineSnapshot(conn *websocket.Conn, userID string) {
	if s.followRepo == nil || s.hub == nil {
		return
	}
	followingIDs, err := s.followRepo.GetFollowingIDs(context.Background(), userID)
	if err != nil {
		log.Printf("failed to load following set for online snapshot: %v", err)
		return
	}
	onlineIDs := make([]string, 0, len(followingIDs))
	for _, id := range followingIDs {
		if s.hub.IsOnline(id) {
			onlineIDs = append(onlineIDs, id)
		}
	}
	msg, err := json.Marshal(map[string]interface{}{
		"type": "following_online_snapshot",
		"payload": map[string]interface{}{
			"user_ids": onlineIDs,
		},
	})
	if err != nil {
		log.Printf("failed to marshal online snapshot: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Printf("failed to write online snapshot: %v", err)
	}
}
