package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
)

const (
	// CSRFCookieName is the script-readable companion cookie set on login
	// and signup.
	CSRFCookieName = "csrfToken"
	// CSRFHeaderName is the header clients must echo the cookie value into.
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFGuard enforces the double-submit cookie pattern: state-changing
// requests must carry the CSRF token both as a cookie and as a header, and
// the two must match byte for byte.
func CSRFGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		cookie := c.Cookies(CSRFCookieName)
		header := c.Get(CSRFHeaderName)

		if cookie == "" || header == "" {
			return apperr.CsrfMismatch()
		}

		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			return apperr.CsrfMismatch()
		}

		return c.Next()
	}
}
