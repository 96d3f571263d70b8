// Package identity provides a client for the Clerk user API.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUserNotFound is returned when the identity provider has no user for the given ID.
var ErrUserNotFound = errors.New("identity: user not found")

// EmailAddress is a single email address record on a Clerk user.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// User is the subset of the Clerk user object the application consumes.
type User struct {
	ID                    string         `json:"id"`
	Username              string         `json:"username"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
}

// PrimaryEmail returns the primary email address, falling back to the first one.
func (u *User) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

// DisplayName joins first and last name when both are present.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return ""
}

// FallbackUsername derives a username from the identity ID when Clerk has none.
func (u *User) FallbackUsername() string {
	id := u.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "user_" + id
}

// Client fetches user records from the identity provider.
type Client interface {
	FetchUser(ctx context.Context, userID string) (*User, error)
}

type httpClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewClient creates a Clerk API client for the given base URL and secret key.
func NewClient(baseURL, secretKey string) Client {
	return &httpClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) FetchUser(ctx context.Context, userID string) (*User, error) {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: fetch user %s: %w", userID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity: unexpected status %d fetching user %s: %s", resp.StatusCode, userID, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("identity: decode user %s: %w", userID, err)
	}
	return &user, nil
}
