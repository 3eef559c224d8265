package api

import (
	"strings"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// SessionContextKey is the key used to store the caller session in the Fiber
// context.
const SessionContextKey = "session"

// AuthMiddleware creates a middleware that resolves the bearer token into a
// session. Every write route mounts it; the handler then trusts only the
// session identity, never usernames supplied in the body.
func AuthMiddleware(authPort auth.Port) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		session, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(SessionContextKey, session)
		return c.Next()
	}
}
