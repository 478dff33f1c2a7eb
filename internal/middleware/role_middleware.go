package middleware

import (
	"storerating/internal/models"
	"storerating/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles admits only identities holding one of roles. It must run after
// AuthRequired: a missing identity is 401, a wrong role 403.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication token required",
			})
		}
		if !services.HasRole(identity, roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied",
			})
		}
		return c.Next()
	}
}
