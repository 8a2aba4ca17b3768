// Package utils holds response helpers shared by the dashboard handlers.
package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fbotlabs/fbot/backend/models"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message))
}

// SendBadRequest sends a bad request error response
func SendBadRequest(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// SendUnauthorized sends an unauthorized error response
func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// SendNotFound sends a not found error response
func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// SendTooManyRequests sends a rate-limit error response
func SendTooManyRequests(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

// SendInternalServerError sends an internal server error response
func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// GetIPAddress returns the client IP, honoring proxy headers
func GetIPAddress(c *fiber.Ctx) string {
	if ip := c.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return c.IP()
}
