package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AuthRateLimit slows down credential guessing: after maxPerMin rejected
// authentication attempts from one client IP within a minute, further
// requests are refused until the window expires. Successful requests are not
// counted.
func AuthRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 10
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next() // no-op without Redis
		}
		key := "rl:auth:" + c.IP()

		cnt, err := cache.Get(c.UserContext(), key).Int64()
		if err != nil && err != redis.Nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt >= int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many failed authentication attempts, try again later")
		}

		handlerErr := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := handlerErr.(*fiber.Error); ok {
			status = fe.Code
		}
		if status == http.StatusUnauthorized {
			if n, err := cache.Incr(c.UserContext(), key).Result(); err == nil && n == 1 {
				cache.Expire(c.UserContext(), key, time.Minute)
			}
		}

		return handlerErr
	}
}
