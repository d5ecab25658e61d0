// Package middleware provides request context, logging, auth, and throttling middleware.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"homiee/internal/models"
)

// FailPolicy decides what happens to a throttled route when the counter
// store is unreachable.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503.
	FailClosed
)

func throttlingDisabled() bool {
	switch env := os.Getenv("APP_ENV"); env {
	case "test", "development", "stress", "":
		return true
	}
	return false
}

// CheckRateLimit applies a fixed-window counter for (resource, id) and
// reports whether the request is within limit. Test, development, and stress
// environments are never throttled.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if throttlingDisabled() {
		return true, nil
	}
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit of the window starts the expiry clock.
		rdb.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

// RateLimit throttles to limit requests per window, keyed by authenticated
// email when present and remote IP otherwise. Store outages fail open.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit outage policy for routes
// where failing open would be worse than rejecting.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if email, ok := c.Locals("userEmail").(string); ok && email != "" {
			id = "user:" + email
		}

		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		allowed, err := CheckRateLimit(c.UserContext(), rdb, resource, id, limit, window)
		if err != nil {
			if policy == FailClosed {
				slog.WarnContext(c.UserContext(), "Rate limit store unavailable, failing closed",
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
					Error: "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
