package handler

import (
	"errors"
	"strconv"

	"go-stockroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseID parses the :id route param.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// respondErr maps the service error taxonomy onto status codes. Anything
// untyped falls through as a 500, which should not happen — services wrap
// every store failure.
func respondErr(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	var notFoundErr *service.ReferenceNotFoundError
	var constraintErr *service.ConstraintViolation
	var unavailableErr *service.StoreUnavailable

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &constraintErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &unavailableErr):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
