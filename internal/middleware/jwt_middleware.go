package middleware

import (
	"strings"

	"storerating/internal/services"
	"storerating/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "identity"

// TokenVerifier decodes a bearer token into the caller's identity.
type TokenVerifier interface {
	VerifyToken(token string) (*services.Identity, error)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication token required",
			})
		}

		identity, err := verifier.VerifyToken(tokenString)
		if err != nil {
			logger.Log.Debug("JWT validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// AuthOptional attaches the caller's identity when a valid token is present
// and otherwise lets the request through anonymously.
func AuthOptional(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c); ok {
			if identity, err := verifier.VerifyToken(tokenString); err == nil {
				c.Locals(identityKey, identity)
			}
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthRequired or AuthOptional,
// or nil for an anonymous request.
func IdentityFrom(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}
