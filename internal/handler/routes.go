package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/config"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
	"github.com/aaronipollock/memory-palace-sub001/pkg/blacklist"
	"github.com/aaronipollock/memory-palace-sub001/pkg/jwt"
)

// Handlers bundles everything SetupRoutes needs to wire the API.
type Handlers struct {
	Auth       *AuthHandler
	Generation *GenerationHandler
	Palace     *PalaceHandler
	Room       *RoomHandler
	Feedback   *FeedbackHandler
	Health     *HealthHandler

	TokenService   *jwt.TokenService
	TokenBlacklist blacklist.Blacklist
	UserRepo       repository.UserRepository
	PalaceRepo     repository.PalaceRepository
	RoomRepo       repository.RoomRepository
}

// SetupRoutes registers every route with its middleware chain. Guards run
// cheapest first: rate limit, then token validation, then CSRF, then
// ownership.
func SetupRoutes(app *fiber.App, h Handlers, cfg *config.Config) {
	generalLimiter := middleware.RateLimiter(cfg.RateLimit.GeneralMax, cfg.RateLimit.GeneralWindow)
	authLimiter := middleware.RateLimiter(cfg.RateLimit.AuthMax, cfg.RateLimit.AuthWindow)
	generationLimiter := middleware.RateLimiter(cfg.RateLimit.GenerationMax, cfg.RateLimit.GenerationWindow)

	authMW := middleware.AuthMiddleware(h.TokenService, h.TokenBlacklist)
	csrfMW := middleware.CSRFGuard()
	palaceOwner := middleware.RequirePalaceOwnership(h.PalaceRepo, h.UserRepo)
	roomOwner := middleware.RequireRoomOwnership(h.RoomRepo, h.UserRepo)

	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)

	api := app.Group("/api/v1")

	auth := api.Group("/auth", authLimiter)
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", authMW, csrfMW, h.Auth.Logout)

	api.Post("/generate-images", generationLimiter, authMW, csrfMW, h.Generation.GenerateImages)
	api.Post("/generate-room", generationLimiter, authMW, csrfMW, h.Generation.GenerateRoom)

	palaces := api.Group("/palaces", generalLimiter, authMW)
	palaces.Post("/", csrfMW, h.Palace.Create)
	palaces.Get("/", h.Palace.List)
	palaces.Get("/:id", palaceOwner, h.Palace.Get)
	palaces.Put("/:id", csrfMW, palaceOwner, h.Palace.Update)
	palaces.Delete("/:id", csrfMW, palaceOwner, h.Palace.Delete)

	rooms := api.Group("/rooms", generalLimiter, authMW)
	rooms.Post("/", csrfMW, h.Room.Create)
	rooms.Get("/", h.Room.List)
	rooms.Get("/:id", roomOwner, h.Room.Get)
	rooms.Delete("/:id", csrfMW, roomOwner, h.Room.Delete)

	api.Post("/feedback", generalLimiter, authMW, csrfMW, h.Feedback.Send)
}
