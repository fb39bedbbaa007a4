package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// rateLimitKey is the Redis counter for one caller on one resource.
func rateLimitKey(resource, id string) string {
	return fmt.Sprintf("rl:%s:%s", resource, id)
}

// rateLimitBypassed reports whether APP_ENV disables limiting, so local
// runs and test suites are never throttled.
func rateLimitBypassed() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development":
		return true
	}
	return false
}

// CheckRateLimit checks if a resource has exceeded its rate limit.
// Returns true if allowed, false if limit exceeded.
// Rate limiting is disabled when APP_ENV is "test" or "development".
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	count, err := hit(ctx, rdb, resource, id, window)
	if err != nil {
		return false, err
	}
	return count <= int64(limit), nil
}

// hit counts one request in the current window. A bypassed environment
// always reports a count of zero.
func hit(ctx context.Context, rdb *redis.Client, resource, id string, window time.Duration) (int64, error) {
	if rateLimitBypassed() {
		return 0, nil
	}
	if rdb == nil {
		return 0, errNoRedis
	}

	key := rateLimitKey(resource, id)

	// INCR and set EXPIRE if new
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt, nil
}

// retryAfter returns the whole seconds left in the caller's window, or the
// full window when Redis cannot tell.
func retryAfter(ctx context.Context, rdb *redis.Client, key string, window time.Duration) int {
	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}
	return int(math.Ceil(ttl.Seconds()))
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`.
// It keys by authenticated userID (if set in c.Locals("userID")) otherwise by remote IP.
// It defaults to FailOpen policy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy returns a Fiber middleware enforcing `limit` requests per `window` with a specific failure policy.
// Counted responses carry X-RateLimit-Limit and X-RateLimit-Remaining; a rejected one also carries Retry-After.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var id string
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		// Use the provided name or the request path as the resource identifier
		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		count, err := hit(ctx, rdb, resource, id, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(ctx, "Rate limit fail-closed",
					slog.String("path", c.Path()),
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			// Default FailOpen
			Logger.DebugContext(ctx, "Rate limit skipped",
				slog.String("resource", resource),
				slog.String("error", err.Error()),
			)
			return c.Next()
		}
		if count == 0 {
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(max(int64(limit)-count, 0), 10))

		if count > int64(limit) {
			// Too many requests
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter(ctx, rdb, rateLimitKey(resource, id), window)))
			Logger.InfoContext(ctx, "Rate limit exceeded",
				slog.String("resource", resource),
				slog.String("caller", id),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
