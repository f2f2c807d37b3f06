package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/shared"
)

// serviceErrorResponse maps the error taxonomy onto HTTP statuses: validation
// errors are 400, not-found 404, integration failures 502 with a generic
// message, anything else 500.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	if se, ok := err.(*shared.ServiceError); ok {
		switch se.Category {
		case shared.ErrorCategoryValidation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   se.Message,
			})
		case shared.ErrorCategoryNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   se.Message,
			})
		case shared.ErrorCategoryIntegration:
			se.LogError()
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   "External service request failed",
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
