package db

import (
	"github.com/LittlJoey/pet-tracker-app/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds the pub/sub client for live walk broadcasts.
// Redis is optional: with no address configured the stream hub runs in
// single-instance mode and the server starts without it.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
