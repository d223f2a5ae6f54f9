package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/service"
	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	validator       *validator.Validator
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, validator *validator.Validator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validator:       validator,
	}
}

// Send forwards feedback from the authenticated user
// POST /api/v1/feedback
func (h *FeedbackHandler) Send(c *fiber.Ctx) error {
	var req service.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	fromEmail, _ := c.Locals(middleware.LocalEmail).(string)

	if err := h.feedbackService.Send(c.Context(), fromEmail, req); err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Feedback received",
	})
}
