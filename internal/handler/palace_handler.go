package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/service"
	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

type PalaceHandler struct {
	palaceService *service.PalaceService
	validator     *validator.Validator
}

func NewPalaceHandler(palaceService *service.PalaceService, validator *validator.Validator) *PalaceHandler {
	return &PalaceHandler{
		palaceService: palaceService,
		validator:     validator,
	}
}

// Create stores a new memory palace for the authenticated user
// POST /api/v1/palaces
func (h *PalaceHandler) Create(c *fiber.Ctx) error {
	var req service.CreatePalaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	ownerID, _ := c.Locals(middleware.LocalUserID).(string)

	palace, err := h.palaceService.Create(c.Context(), ownerID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(palace)
}

// List returns the authenticated user's palaces
// GET /api/v1/palaces
func (h *PalaceHandler) List(c *fiber.Ctx) error {
	ownerID, _ := c.Locals(middleware.LocalUserID).(string)

	palaces, err := h.palaceService.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"palaces": palaces,
	})
}

// Get returns a single palace already loaded by the ownership middleware
// GET /api/v1/palaces/:id
func (h *PalaceHandler) Get(c *fiber.Ctx) error {
	palace, ok := c.Locals(middleware.LocalPalace).(*domain.MemoryPalace)
	if !ok {
		return apperr.NotFound("palace")
	}

	return c.Status(fiber.StatusOK).JSON(palace)
}

// Update applies a partial update to an owned palace
// PUT /api/v1/palaces/:id
func (h *PalaceHandler) Update(c *fiber.Ctx) error {
	palace, ok := c.Locals(middleware.LocalPalace).(*domain.MemoryPalace)
	if !ok {
		return apperr.NotFound("palace")
	}

	var req service.UpdatePalaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	updated, err := h.palaceService.Update(c.Context(), palace, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete removes an owned palace
// DELETE /api/v1/palaces/:id
func (h *PalaceHandler) Delete(c *fiber.Ctx) error {
	palace, ok := c.Locals(middleware.LocalPalace).(*domain.MemoryPalace)
	if !ok {
		return apperr.NotFound("palace")
	}

	if err := h.palaceService.Delete(c.Context(), palace.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Palace deleted successfully",
	})
}
