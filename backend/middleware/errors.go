// Package middleware holds the dashboard's fiber middleware.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fbotlabs/fbot/backend/models"
)

// CustomErrorHandler renders every unhandled error as a JSON envelope.
// The dashboard is API-only; there are no HTML error pages.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(models.NewErrorResponse("INTERNAL_ERROR", message))
}
