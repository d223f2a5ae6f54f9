package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
)

const (
	refreshCookieName = "refreshToken"
	// The refresh cookie is scoped to the one endpoint that needs it so it
	// never rides on other requests.
	refreshCookiePath = "/api/v1/auth/refresh"
)

// setSessionCookies delivers the refresh token (HttpOnly, path-restricted)
// and the CSRF companion token (script-readable, path /).
func setSessionCookies(c *fiber.Ctx, refreshToken, csrfToken string, ttl time.Duration, secure bool) {
	expires := time.Now().Add(ttl)

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CSRFCookieName,
		Value:    csrfToken,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: false,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func clearSessionCookies(c *fiber.Ctx, secure bool) {
	expired := time.Now().Add(-time.Hour)

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		Expires:  expired,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CSRFCookieName,
		Value:    "",
		Path:     "/",
		Expires:  expired,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
