package middleware

import (
	"strings"

	"vidshare/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	localUserID   = "user_id"
	localUsername = "username"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		if err := authenticate(c, authService, tokenString); err != nil {
			logrus.WithError(err).Debug("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		return c.Next()
	}
}

// AuthOptional identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c.Get("Authorization")); ok {
			if err := authenticate(c, authService, tokenString); err != nil {
				logrus.WithError(err).Debug("ignoring invalid optional token")
			}
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user's ID, or "" for anonymous requests.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// Expected format: "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(c *fiber.Ctx, authService *services.AuthService, tokenString string) error {
	claims, err := authService.ValidateToken(tokenString)
	if err != nil {
		return err
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return fiber.ErrUnauthorized
	}

	// Store claims in Fiber context for subsequent handlers
	c.Locals(localUserID, userID)
	c.Locals(localUsername, claims["username"])
	return nil
}
