package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
)

// RateLimiter builds a sliding-window limiter keyed by client address.
// Route classes get their own instances (general, auth, generation) so a
// burst against one class never starves another.
func RateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			// The limiter sets Retry-After (seconds until the window
			// resets) before invoking this handler.
			retryAfter, err := strconv.Atoi(c.GetRespHeader(fiber.HeaderRetryAfter))
			if err != nil || retryAfter < 0 {
				retryAfter = int(window.Seconds())
			}
			return apperr.RateLimited(retryAfter)
		},
	})
}
