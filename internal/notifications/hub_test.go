package notifications

import (
	"fmt"
	"testing"
	"time"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	h := NewHub()

	client, err := h.Register("user_1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h.Broadcast("user_1", `{"type":"like"}`)

	select {
	case msg := <-client.Send:
		if string(msg) != `{"type":"like"}` {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubBroadcastOtherUser(t *testing.T) {
	h := NewHub()

	client, err := h.Register("user_1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h.Broadcast("user_2", "not for you")

	select {
	case msg := <-client.Send:
		t.Fatalf("unexpected message %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubPerUserConnectionLimit(t *testing.T) {
	h := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		if _, err := h.Register("user_1", nil); err != nil {
			t.Fatalf("registration %d failed: %v", i, err)
		}
	}
	if _, err := h.Register("user_1", nil); err == nil {
		t.Fatal("expected per-user limit error")
	}
	// A different user still gets in.
	if _, err := h.Register("user_2", nil); err != nil {
		t.Fatalf("unexpected error for second user: %v", err)
	}
}

func TestHubUnregisterTracksOnline(t *testing.T) {
	h := NewHub()

	client, err := h.Register("user_1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.IsOnline("user_1") {
		t.Fatal("expected user online after register")
	}

	h.UnregisterClient(client)
	if h.IsOnline("user_1") {
		t.Fatal("expected user offline after unregister")
	}

	// Double unregister must not corrupt counters.
	h.UnregisterClient(client)

	for i := 0; i < maxConnsPerUser; i++ {
		if _, err := h.Register("user_1", nil); err != nil {
			t.Fatalf("re-registration %d failed: %v", i, err)
		}
	}
}

func TestHubTotalConnectionLimitCounts(t *testing.T) {
	h := NewHub()
	for i := 0; i < 20; i++ {
		userID := fmt.Sprintf("user_%d", i)
		if _, err := h.Register(userID, nil); err != nil {
			t.Fatalf("registration for %s failed: %v", userID, err)
		}
	}
	if h.totalConns != 20 {
		t.Fatalf("expected 20 tracked connections, got %d", h.totalConns)
	}
}
