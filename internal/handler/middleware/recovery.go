package middleware

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
)

// RecoveryMiddleware converts panics into a generic internal error so a
// misbehaving handler never crashes the process. The stack trace goes to the
// log only.
func RecoveryMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC: %v\n%s", r, debug.Stack())
				err = apperr.Internal(fmt.Errorf("panic: %v", r))
			}
		}()

		return c.Next()
	}
}
