package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// Config holds the middleware configuration.
type Config struct {
	// ApiKey is the expected key. An empty key disables the check, which is
	// the development default.
	ApiKey string
}

// New creates a middleware that rejects requests without the configured API
// key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		provided := c.Get(HeaderName)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		return c.Next()
	}
}
