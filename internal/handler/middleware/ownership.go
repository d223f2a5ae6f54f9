package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
)

// Locals keys for resources loaded by the ownership gates.
const (
	LocalPalace = "palace"
	LocalRoom   = "room"
)

// RequirePalaceOwnership loads the palace named by the :id route param and
// rejects the request unless the authenticated user owns it or is an admin.
// The loaded palace is stored in locals so handlers don't fetch it twice.
func RequirePalaceOwnership(palaceRepo repository.PalaceRepository, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(LocalUserID).(string)
		if !ok || userID == "" {
			return apperr.MissingToken()
		}

		palace, err := palaceRepo.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("palace")
			}
			return apperr.Internal(err)
		}

		if palace.OwnerID != userID {
			if !isAdmin(c, userRepo, userID) {
				return apperr.Forbidden()
			}
		}

		c.Locals(LocalPalace, palace)
		return c.Next()
	}
}

// RequireRoomOwnership is the custom-room counterpart of
// RequirePalaceOwnership.
func RequireRoomOwnership(roomRepo repository.RoomRepository, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(LocalUserID).(string)
		if !ok || userID == "" {
			return apperr.MissingToken()
		}

		room, err := roomRepo.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("room")
			}
			return apperr.Internal(err)
		}

		if room.OwnerID != userID {
			if !isAdmin(c, userRepo, userID) {
				return apperr.Forbidden()
			}
		}

		c.Locals(LocalRoom, room)
		return c.Next()
	}
}

// isAdmin loads the user record only on an owner mismatch, the rare path.
func isAdmin(c *fiber.Ctx, userRepo repository.UserRepository, userID string) bool {
	user, err := userRepo.GetByID(c.Context(), userID)
	return err == nil && user.IsAdmin
}
