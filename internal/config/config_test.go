package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProductionConfig() *Config {
	return &Config{
		Env:                "production",
		Port:               "8480",
		JWTSecret:          "secure-secret-at-least-32-chars-long",
		DBPassword:         "secure-password",
		DBSSLMode:          "require",
		ClerkSecretKey:     "sk_live_abc123",
		ClerkWebhookSecret: "whsec_dGVzdHNlY3JldA==",
	}
}

func TestConfig_Validate_Production(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid production config", func(c *Config) {}, false},
		{"default JWT secret rejected", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short JWT secret rejected", func(c *Config) {
			c.JWTSecret = "too-short"
		}, true},
		{"default DB password rejected", func(c *Config) {
			c.DBPassword = "password"
		}, true},
		{"empty DB password rejected", func(c *Config) {
			c.DBPassword = ""
		}, true},
		{"missing Clerk secret key rejected", func(c *Config) {
			c.ClerkSecretKey = ""
		}, true},
		{"missing webhook secret rejected", func(c *Config) {
			c.ClerkWebhookSecret = ""
		}, true},
		{"webhook secret without whsec_ prefix rejected", func(c *Config) {
			c.ClerkWebhookSecret = "dGVzdHNlY3JldA=="
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validProductionConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_Development(t *testing.T) {
	// Development tolerates weak secrets and missing Clerk credentials.
	c := &Config{
		Env:       "development",
		Port:      "8480",
		JWTSecret: "dev-secret",
	}
	assert.NoError(t, c.Validate())
}

func TestConfig_Validate_RequiredFields(t *testing.T) {
	c := &Config{JWTSecret: "dev-secret"}
	assert.Error(t, c.Validate(), "missing PORT should fail")

	c = &Config{Port: "8480"}
	assert.Error(t, c.Validate(), "missing JWT_SECRET should fail")
}
