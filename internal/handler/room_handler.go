package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/service"
	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

type RoomHandler struct {
	roomService *service.RoomService
	validator   *validator.Validator
}

func NewRoomHandler(roomService *service.RoomService, validator *validator.Validator) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		validator:   validator,
	}
}

// Create stores a custom room for the authenticated user
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.ValidationFailed("invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationFailed(err.Error())
	}

	ownerID, _ := c.Locals(middleware.LocalUserID).(string)

	room, err := h.roomService.Create(c.Context(), ownerID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

// List returns the authenticated user's custom rooms
// GET /api/v1/rooms
func (h *RoomHandler) List(c *fiber.Ctx) error {
	ownerID, _ := c.Locals(middleware.LocalUserID).(string)

	rooms, err := h.roomService.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"rooms": rooms,
	})
}

// Get returns a single room already loaded by the ownership middleware
// GET /api/v1/rooms/:id
func (h *RoomHandler) Get(c *fiber.Ctx) error {
	room, ok := c.Locals(middleware.LocalRoom).(*domain.CustomRoom)
	if !ok {
		return apperr.NotFound("room")
	}

	return c.Status(fiber.StatusOK).JSON(room)
}

// Delete removes an owned custom room
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	room, ok := c.Locals(middleware.LocalRoom).(*domain.CustomRoom)
	if !ok {
		return apperr.NotFound("room")
	}

	if err := h.roomService.Delete(c.Context(), room.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Room deleted successfully",
	})
}
