package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 5                // 5 attempts
	defaultRateWindow = 15 * time.Minute // per 15 minutes
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// Redis is optional; without it counters live in process memory.
	Redis *redis.Client
}

// RateLimiter counts requests per endpoint and client IP within a fixed window.
type RateLimiter struct {
	limit  int
	window time.Duration
	rdb    *redis.Client
	local  *cache.Cache
}

// NewRateLimiter creates a RateLimiter, applying defaults for zero values.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultRateWindow
	}
	return &RateLimiter{
		limit:  cfg.Limit,
		window: cfg.Window,
		rdb:    cfg.Redis,
		local:  cache.New(cfg.Window, 2*cfg.Window),
	}
}

func rateLimitKey(clientIP, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path

		allowed, err := rl.Allow(c.Request.Context(), rateLimitKey(clientIP, endpoint))
		if err != nil {
			// Redis trouble must not lock the practitioner out.
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventSuspicious,
				IP:        clientIP,
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded(clientIP, endpoint)
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Trop de tentatives. Veuillez réessayer plus tard.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()

		// A successful request, such as a login, clears the client's counter.
		if c.Writer.Status() < 300 {
			if err := rl.Reset(c.Request.Context(), clientIP, endpoint); err != nil {
				util.Logger().WithError(err).Warn("Failed to reset rate limit counter")
			}
		}
	}
}

// Allow increments the counter for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl.rdb == nil {
		return rl.allowLocal(key), nil
	}

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	// The window starts with the first request.
	if count == 1 {
		if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) allowLocal(key string) bool {
	if err := rl.local.Add(key, 1, rl.window); err == nil {
		return 1 <= rl.limit
	}
	count, err := rl.local.IncrementInt(key, 1)
	if err != nil {
		// Expired between Add and Increment; start a new window.
		rl.local.Set(key, 1, rl.window)
		return 1 <= rl.limit
	}
	return count <= rl.limit
}

// Reset clears the counter for a client on an endpoint.
func (rl *RateLimiter) Reset(ctx context.Context, clientIP, endpoint string) error {
	key := rateLimitKey(clientIP, endpoint)
	rl.local.Delete(key)
	if rl.rdb == nil {
		return nil
	}
	return rl.rdb.Del(ctx, key).Err()
}
