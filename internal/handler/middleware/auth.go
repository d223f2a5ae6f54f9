package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/pkg/blacklist"
	"github.com/aaronipollock/memory-palace-sub001/pkg/jwt"
)

// Locals keys populated by the middleware chain for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalClaims = "claims"
	LocalToken  = "token"
)

// AuthMiddleware validates the bearer access token and consults the
// blacklist before trusting the signature check. Decoded claims are attached
// to the request context.
func AuthMiddleware(tokenService *jwt.TokenService, tokenBlacklist blacklist.Blacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.MissingToken()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return apperr.MissingToken()
		}
		token := parts[1]

		claims, err := tokenService.ValidateToken(token)
		if err != nil {
			return apperr.InvalidToken()
		}

		revoked, err := tokenBlacklist.Contains(c.Context(), token)
		if err != nil {
			return apperr.Internal(err)
		}
		if revoked {
			return apperr.TokenRevoked()
		}

		if claims.TokenType != domain.TokenTypeAccess {
			return apperr.InvalidToken()
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalClaims, claims)
		c.Locals(LocalToken, token)

		return c.Next()
	}
}
