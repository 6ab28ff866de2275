package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter allows max requests per second per client IP. storage may be nil for in-memory counters.
func RateLimiter(max int, storage fiber.Storage) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Second,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			return ctx.IP()
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ErrorResponse(ctx, fiber.StatusTooManyRequests, fmt.Sprintf("Rate limit exceeded: %d per 1 second", max))
		},
		Storage: storage,
	})
}
