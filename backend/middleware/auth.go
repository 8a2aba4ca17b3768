package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fbotlabs/fbot/backend/utils"
)

// TokenRequired guards the API with a static bearer token. An empty
// configured token disables every protected route.
func TokenRequired(apiToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiToken == "" {
			return utils.SendUnauthorized(c, "API access is disabled")
		}

		header := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return utils.SendUnauthorized(c, "Missing bearer token")
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
			slog.Warn("Rejected dashboard request with bad token",
				slog.String("type", "sys"),
				slog.String("ip", utils.GetIPAddress(c)),
				slog.String("path", c.Path()),
			)
			return utils.SendUnauthorized(c, "Invalid token")
		}

		return c.Next()
	}
}
