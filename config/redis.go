package config

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client for the login rate limiter, or nil
// when REDIS_ADDR is not configured. The caller owns the client.
func ConnectRedis(cfg *Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" || cfg.AppEnv == "test" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	util.Logger().WithField("addr", cfg.RedisAddr).Info("Connected to Redis")
	return rdb, nil
}
