package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/service"
	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

type GenerationHandler struct {
	generationService *service.GenerationService
	validator         *validator.Validator
}

func NewGenerationHandler(generationService *service.GenerationService, validator *validator.Validator) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		validator:         validator,
	}
}

// GenerateImages creates one association illustration per item/anchor pair
// POST /api/v1/generate-images
func (h *GenerationHandler) GenerateImages(c *fiber.Ctx) error {
	var req service.GenerateImagesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	images, err := h.generationService.GenerateAssociations(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"images": images,
	})
}

// GenerateRoom renders a themed room layout image
// POST /api/v1/generate-room
func (h *GenerationHandler) GenerateRoom(c *fiber.Ctx) error {
	var req service.GenerateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	result, err := h.generationService.GenerateRoom(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
