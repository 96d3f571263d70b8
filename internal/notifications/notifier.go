// Package notifications provides real-time notification delivery and management.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(
	ctx context.Context, userID string, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// PublishTyping publishes a typing indicator into the recipient's channel.
// It rides the same channel as notifications so the hub needs no extra
// subscription; clients dispatch on the "type" field.
func (n *Notifier) PublishTyping(
	ctx context.Context, recipientID, senderID, senderUsername string, isTyping bool,
) error {
	if n.rdb == nil {
		return nil
	}
	payload := map[string]interface{}{
		"type": "typing",
		"payload": map[string]interface{}{
			"user_id":       senderID,
			"username":      senderUsername,
			"is_typing":     isTyping,
			"expires_in_ms": 5000,
		},
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(recipientID), string(payloadJSON)).Err()
}

// PublishPresence broadcasts a user's presence transition to all clients.
func (n *Notifier) PublishPresence(
	ctx context.Context, userID, status string,
) error {
	if n.rdb == nil {
		return nil
	}
	payload := map[string]interface{}{
		"type": "presence",
		"payload": map[string]interface{}{
			"user_id": userID,
			"status":  status, // "online" or "offline"
		},
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", string(payloadJSON)).Err()
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:broadcast")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID string) string {
	return "notifications:user:" + userID
}
