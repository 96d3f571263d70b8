package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/users/user_2abc123":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "user_2abc123",
				"username": "alice",
				"first_name": "Alice",
				"last_name": "Smith",
				"image_url": "https://img.clerk.com/alice.png",
				"primary_email_address_id": "idn_2",
				"email_addresses": [
					{"id": "idn_1", "email_address": "old@example.com"},
					{"id": "idn_2", "email_address": "alice@example.com"}
				]
			}`))
		case "/users/user_gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test_secret")

	t.Run("existing user", func(t *testing.T) {
		user, err := client.FetchUser(context.Background(), "user_2abc123")
		require.NoError(t, err)
		assert.Equal(t, "user_2abc123", user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.PrimaryEmail())
		assert.Equal(t, "Alice Smith", user.DisplayName())
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := client.FetchUser(context.Background(), "user_gone")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.FetchUser(context.Background(), "user_boom")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserHelpers(t *testing.T) {
	t.Run("fallback username truncates long ids", func(t *testing.T) {
		u := &User{ID: "user_2abc123def456"}
		assert.Equal(t, "user_user_2ab", u.FallbackUsername())
	})

	t.Run("fallback username keeps short ids", func(t *testing.T) {
		u := &User{ID: "abc"}
		assert.Equal(t, "user_abc", u.FallbackUsername())
	})

	t.Run("display name requires both parts", func(t *testing.T) {
		assert.Equal(t, "", (&User{FirstName: "Alice"}).DisplayName())
		assert.Equal(t, "", (&User{LastName: "Smith"}).DisplayName())
	})

	t.Run("primary email falls back to first address", func(t *testing.T) {
		u := &User{
			PrimaryEmailAddressID: "missing",
			EmailAddresses:        []EmailAddress{{ID: "idn_1", EmailAddress: "first@example.com"}},
		}
		assert.Equal(t, "first@example.com", u.PrimaryEmail())

		assert.Equal(t, "", (&User{}).PrimaryEmail())
	})
}
