// Package bootstrap wires up shared runtime dependencies for the server
// and the operational commands (seeding, migrations).
package bootstrap

import (
	"fmt"
	"strings"

	"glimpse/internal/cache"
	"glimpse/internal/config"
	"glimpse/internal/database"
	"glimpse/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema applies the schema inline instead of relying on cmd/migrate.
	ApplySchema bool
	// SeedDemoAccounts ensures the built-in demo profiles exist. Only
	// honored in development.
	SeedDemoAccounts bool
}

// InitRuntime connects to DB and Redis and optionally seeds the built-in
// demo accounts.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: opts.ApplySchema})
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoAccounts && strings.EqualFold(cfg.Env, "development") {
		if err := seed.Accounts(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in demo accounts: %w", err)
		}
	}

	return db, r, nil
}
