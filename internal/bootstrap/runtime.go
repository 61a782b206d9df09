// Package bootstrap establishes the process-wide database and Redis connections.
package bootstrap

import (
	"fmt"

	"videotube/internal/cache"
	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. Schema migration happens
// inside database.Connect outside production; production runs cmd/migrate.
// A missing Redis yields a nil client rather than an error.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)
	if rdb == nil {
		observability.GlobalLogger.Warn("running without redis; write rate limits fall back to fail-open")
	}
	return db, rdb, nil
}
