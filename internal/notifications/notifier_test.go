package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestUserChannel(t *testing.T) {
	if got := UserChannel("user_2abc"); got != "notifications:user:user_2abc" {
		t.Fatalf("unexpected channel %q", got)
	}
}

func TestNotifierNilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()
	if err := n.PublishUser(ctx, "user_1", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.PublishBroadcast(ctx, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.StartPatternSubscriber(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPublishUserRoundTrip(t *testing.T) {
	n := NewNotifier(testRedis(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan [2]string, 1)
	if err := n.StartPatternSubscriber(ctx, func(channel, payload string) {
		received <- [2]string{channel, payload}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The pattern subscription is established asynchronously.
	deadline := time.After(2 * time.Second)
	for {
		if err := n.PublishUser(ctx, "user_1", `{"type":"follow"}`); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		select {
		case msg := <-received:
			if msg[0] != "notifications:user:user_1" {
				t.Fatalf("unexpected channel %q", msg[0])
			}
			if msg[1] != `{"type":"follow"}` {
				t.Fatalf("unexpected payload %q", msg[1])
			}
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestPublishTypingPayload(t *testing.T) {
	rdb := testRedis(t)
	n := NewNotifier(rdb)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, UserChannel("user_2"))
	defer func() { _ = sub.Close() }()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := n.PublishTyping(ctx, "user_2", "user_1", "alice", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var decoded struct {
			Type    string `json:"type"`
			Payload struct {
				UserID   string `json:"user_id"`
				Username string `json:"username"`
				IsTyping bool   `json:"is_typing"`
			} `json:"payload"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &decoded); err != nil {
			t.Fatalf("payload is not valid JSON: %v", err)
		}
		if decoded.Type != "typing" || decoded.Payload.UserID != "user_1" || !decoded.Payload.IsTyping {
			t.Fatalf("unexpected payload %s", msg.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for typing payload")
	}
}
