package handlers

import (
	"errors"
	"strings"

	"storerating/internal/services"
	"storerating/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError writes err as {"message": ...} with the matching status.
// resource names the entity in 404 messages. Unrecognized errors are logged
// and answered with a generic 500.
func respondError(c *fiber.Ctx, resource string, err error) error {
	status, message := fiber.StatusInternalServerError, "Internal server error"

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		status, message = fiber.StatusBadRequest, verr.Message
	case errors.Is(err, services.ErrDuplicateEmail):
		status, message = fiber.StatusBadRequest, "Email already exists"
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		status, message = fiber.StatusBadRequest, "Invalid current password"
	case errors.Is(err, services.ErrConstraintViolation):
		status, message = fiber.StatusBadRequest, "Request violates a data constraint"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrInvalidToken):
		status, message = fiber.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, services.ErrUnauthenticated):
		status, message = fiber.StatusUnauthorized, "Authentication token required"
	case errors.Is(err, services.ErrForbidden):
		status, message = fiber.StatusForbidden, "Access denied"
	case errors.Is(err, services.ErrNotFound):
		status, message = fiber.StatusNotFound, notFoundMessage(resource)
	default:
		logger.Log.Error("Request failed",
			zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func notFoundMessage(resource string) string {
	if resource == "" {
		return "Not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}
