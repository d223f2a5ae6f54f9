package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
)

// NewErrorHandler maps structured application errors to JSON responses.
// Internal diagnostic detail is attached only outside production mode;
// anything unrecognized becomes a generic 500 and never crashes the process.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperr.As(err); ok {
			if appErr.RetryAfter > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(appErr.RetryAfter))
			}

			body := fiber.Map{"error": appErr}
			if !production {
				if cause := appErr.Unwrap(); cause != nil {
					body["detail"] = cause.Error()
				}
			}

			if appErr.Status >= fiber.StatusInternalServerError {
				log.Printf("[%s %s] %v", c.Method(), c.Path(), err)
			}

			return c.Status(appErr.Status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{"code": "Internal", "message": fiberErr.Message},
			})
		}

		log.Printf("[%s %s] unhandled error: %v", c.Method(), c.Path(), err)

		body := fiber.Map{
			"error": fiber.Map{"code": "Internal", "message": "internal server error"},
		}
		if !production {
			body["detail"] = err.Error()
		}

		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
