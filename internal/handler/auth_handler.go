package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/config"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/service"
	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		cfg:         cfg,
	}
}

// Signup handles user registration
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req service.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	resp, err := h.authService.Signup(c.Context(), req)
	if err != nil {
		return err
	}

	setSessionCookies(c, resp.Tokens.RefreshToken, resp.CSRFToken,
		h.cfg.JWT.RefreshTokenExpiry, h.cfg.Server.IsProduction())

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return err
	}

	setSessionCookies(c, resp.Tokens.RefreshToken, resp.CSRFToken,
		h.cfg.JWT.RefreshTokenExpiry, h.cfg.Server.IsProduction())

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Refresh exchanges the refresh token cookie for a new access token. The
// refresh token only ever travels in its HttpOnly cookie.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		return apperr.MissingToken()
	}

	accessToken, expiresAt, err := h.authService.Refresh(c.Context(), refreshToken)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": accessToken,
		"expires_at":   expiresAt,
		"token_type":   "Bearer",
	})
}

// Logout blacklists the access token and clears session cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals(middleware.LocalClaims).(*domain.Claims)
	if !ok {
		return apperr.MissingToken()
	}
	token, _ := c.Locals(middleware.LocalToken).(string)

	if err := h.authService.Logout(c.Context(), token, claims); err != nil {
		return err
	}

	clearSessionCookies(c, h.cfg.Server.IsProduction())

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
